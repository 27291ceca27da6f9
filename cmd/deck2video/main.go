package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/deck2video/internal/config"
	"github.com/ivlev/deck2video/internal/deck"
	"github.com/ivlev/deck2video/internal/export"
	"github.com/ivlev/deck2video/internal/raster"
	"github.com/ivlev/deck2video/internal/source"
	"github.com/ivlev/deck2video/internal/system"
	"github.com/mattn/go-isatty"
)

var BuildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{deck.DefaultDir, "input/audio", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Путь к YAML презентации (по умолчанию: самый свежий файл в input/decks/)")
	outputPtr := flag.String("output", "", "Папка для кадров (если пусто, генерируется автоматически в output/)")
	initPtr := flag.Bool("init", false, "Записать пример презентации в input/decks/ и выйти")
	widthPtr := flag.Int("width", 1280, "Ширина")
	heightPtr := flag.Int("height", 720, "Высота")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	fpsPtr := flag.Int("fps", 30, "FPS анимированного экспорта")
	holdPtr := flag.Int("hold", 1, "Сколько кадров держать состояние до и после каждой анимации")
	animatedPtr := flag.Bool("animated", false, "Экспортировать все кадры анимаций, а не только ключевые состояния")
	videoPtr := flag.Bool("video", false, "Собрать анимацию в MP4 через ffmpeg")
	workersPtr := flag.Int("workers", 0, "Потоки (0 - авто по CPU и памяти)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	dpiPtr := flag.Int("dpi", 150, "DPI для страниц PDF в ресурсах")
	startPtr := flag.Int("start", 0, "Номер кадра, с которого продолжить экспорт")
	audioPtr := flag.String("audio", "", "Путь к аудио для видео (по умолчанию: самый свежий файл в input/audio/)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	if *initPtr {
		path := filepath.Join(deck.DefaultDir, "sample.yaml")
		if err := deck.Write(deck.Sample(), path); err != nil {
			log.Fatalf("[-] Ошибка записи примера: %v", err)
		}
		fmt.Printf("[+++] Пример презентации сохранен: %s\n", path)
		return
	}

	cfg := &config.Config{
		Width:        *widthPtr,
		Height:       *heightPtr,
		Preset:       *presetPtr,
		FPS:          *fpsPtr,
		HoldFrames:   *holdPtr,
		Animated:     *animatedPtr || *videoPtr,
		Video:        *videoPtr,
		DPI:          *dpiPtr,
		StartIndex:   *startPtr,
		ShowStats:    *statsPtr,
		BuildVersion: BuildVersion,
	}
	if err := cfg.ApplyPreset(); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	cfg.InputPath = *inputPtr
	if cfg.InputPath == "" {
		latest, err := deck.FindLatest(deck.DefaultDir)
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите YAML в %s/ или запустите с -init", err, deck.DefaultDir)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	presentation, err := deck.Load(cfg.InputPath)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения презентации: %v", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(cfg.InputPath), filepath.Ext(cfg.InputPath))
	cleanName := strings.ReplaceAll(baseName, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	cfg.OutputDir = *outputPtr
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join("output", fmt.Sprintf("%s_%s", cleanName, timestamp))
	}

	if cfg.Workers = *workersPtr; cfg.Workers <= 0 {
		cfg.Workers = system.DefaultWorkers(cfg.Width, cfg.Height)
	}

	if cfg.Video {
		cfg.OutputVideo = filepath.Join(cfg.OutputDir, cleanName+".mp4")

		cfg.AudioPath = *audioPtr
		if cfg.AudioPath == "" {
			if latest, err := system.FindLatest("input/audio", system.AudioExtensions...); err == nil {
				cfg.AudioPath = latest
				fmt.Printf("[*] Выбрано аудио: %s\n", cfg.AudioPath)
			}
		}

		cfg.VideoEncoder = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
		}
		if cfg.Quality = *qualityPtr; cfg.Quality == 0 {
			cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	assets := source.NewAssets(presentation.Resources, cfg.DPI)
	defer assets.Close()
	if err := assets.Preload(); err != nil {
		log.Printf("[!] Не все изображения загружены: %v", err)
	}

	project := export.NewProject(cfg, presentation, raster.New(presentation, cfg.Width, cfg.Height, assets))
	project.Progress = progressPrinter()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	result := cfg.OutputDir
	if cfg.Video {
		result = cfg.OutputVideo
	}
	fmt.Printf("[+++] Успех! Результат: %s\n", result)
}

// progressPrinter rewrites one line on a terminal and prints every tenth step
// otherwise.
func progressPrinter() export.Progress {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return func(done, total int) {
		switch {
		case tty:
			fmt.Printf("\r[>] Готово: %d/%d", done, total)
			if done == total {
				fmt.Println()
			}
		case done%10 == 0 || done == total:
			fmt.Printf("[>] Готово: %d/%d\n", done, total)
		}
	}
}

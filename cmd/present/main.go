package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ivlev/deck2video/internal/deck"
	"github.com/ivlev/deck2video/internal/present"
	"github.com/ivlev/deck2video/internal/source"
	"github.com/ivlev/deck2video/internal/storage"
)

const appName = "deck2video"

func main() {
	inputPtr := flag.String("input", "", "Путь к YAML презентации (по умолчанию: самый свежий файл в input/decks/)")
	widthPtr := flag.Int("width", 1280, "Ширина окна")
	heightPtr := flag.Int("height", 720, "Высота окна")
	dpiPtr := flag.Int("dpi", 150, "DPI для страниц PDF в ресурсах")
	cachePtr := flag.Int("cache-minutes", 15, "Сколько минут помнить позицию (0 - не восстанавливать)")
	flag.Parse()

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := deck.FindLatest(deck.DefaultDir)
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите YAML в %s/", err, deck.DefaultDir)
		}
		inputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", inputPath)
	}

	presentation, err := deck.Load(inputPath)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения презентации: %v", err)
	}

	assets := source.NewAssets(presentation.Resources, *dpiPtr)
	defer assets.Close()
	if err := assets.Preload(); err != nil {
		log.Printf("[!] Не все изображения загружены: %v", err)
	}

	var backend storage.Backend
	if gd, err := storage.OpenGdata(appName); err == nil {
		backend = gd
	} else {
		log.Printf("[!] Позиция не будет сохраняться между запусками: %v", err)
		backend = &storage.MemoryBackend{}
	}

	game := present.NewGame(presentation, *widthPtr, *heightPtr, assets, storage.New(backend))
	game.Resume(time.Duration(*cachePtr) * time.Minute)

	ebiten.SetWindowSize(*widthPtr, *heightPtr)
	ebiten.SetWindowTitle(presentation.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("[-] Ошибка окна: %v", err)
	}
}

package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ivlev/deck2video/internal/config"
	"github.com/ivlev/deck2video/internal/raster"
	"github.com/ivlev/deck2video/internal/slide"
	"github.com/ivlev/deck2video/internal/video"
	"golang.org/x/sync/errgroup"
)

// ErrEmpty is returned when the presentation yields no frames.
var ErrEmpty = errors.New("no frames to export")

// Progress is called after each finished frame. Calls are serialised.
type Progress func(done, total int)

// Project exports a presentation as numbered images or as a video.
type Project struct {
	Config       *config.Config
	Presentation *slide.Presentation
	Renderer     *raster.Renderer
	Progress     Progress

	// NewEncoder opens the video output; nil means ffmpeg.
	NewEncoder func(ctx context.Context, path string, params video.Params) (video.FrameWriter, error)

	mu   sync.Mutex
	done int
}

func NewProject(cfg *config.Config, p *slide.Presentation, r *raster.Renderer) *Project {
	return &Project{Config: cfg, Presentation: p, Renderer: r}
}

// Frames returns the frames the project will export.
func (p *Project) Frames() []Frame {
	if p.Config.Animated || p.Config.Video {
		return AnimatedFrames(p.Presentation, p.Config.FPS, p.Config.HoldFrames)
	}
	return KeyFrames(p.Presentation)
}

// Run renders every frame and writes it out.
func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	frames := p.Frames()
	if len(frames) == 0 {
		return ErrEmpty
	}

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", p.Config.OutputDir, err)
	}

	fmt.Printf("[*] Презентация: %s | Слайдов: %d | Кадров: %d\n", p.Presentation.Title, len(p.Presentation.Slides), len(frames))
	fmt.Printf("[*] Разрешение: %dx%d | Потоков: %d\n", p.Config.Width, p.Config.Height, p.workers())
	if p.Config.Animated || p.Config.Video {
		fmt.Printf("[*] Анимация: %.2fs | FPS: %d | Кадров паузы: %d\n", PlaybackTime(p.Presentation)/1000, p.Config.FPS, p.Config.HoldFrames)
	}

	var err error
	if p.Config.Video {
		err = p.encode(ctx, frames)
	} else {
		err = p.writeImages(ctx, frames)
	}
	if err != nil {
		return err
	}

	if p.Config.ShowStats {
		total := time.Since(startTime)
		fmt.Printf("--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
			p.Config.BuildVersion, len(frames), total.Seconds(), float64(len(frames))/total.Seconds())
	}
	return nil
}

func (p *Project) workers() int {
	return max(p.Config.Workers, 1)
}

func (p *Project) render(f Frame) *image.RGBA {
	s := p.Presentation.Slide(f.SlideIndex)
	return p.Renderer.Render(s, f.Snapshot(s))
}

func (p *Project) report(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.Progress != nil {
		p.Progress(p.done, total)
	}
}

// writeImages saves frames as numbered PNG files. Frames before StartIndex are
// skipped but keep their numbers.
func (p *Project) writeImages(ctx context.Context, frames []Frame) error {
	start := min(p.Config.StartIndex, len(frames))
	if start > 0 {
		fmt.Printf("[*] Пропускаем первые %d кадров\n", start)
	}
	p.done = start

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())

	for i := start; i < len(frames); i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			img := p.render(frames[i])
			defer p.Renderer.Release(img)

			path := filepath.Join(p.Config.OutputDir, FileName(i))
			if err := writePNG(path, img); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			p.report(len(frames))
			return nil
		})
	}
	return g.Wait()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encode streams frames to the video encoder in order, rendering a batch of
// frames in parallel at a time.
func (p *Project) encode(ctx context.Context, frames []Frame) error {
	if p.Config.StartIndex > 0 {
		fmt.Printf("[!] Стартовый индекс %d игнорируется при записи видео\n", p.Config.StartIndex)
	}

	newEncoder := p.NewEncoder
	if newEncoder == nil {
		newEncoder = func(ctx context.Context, path string, params video.Params) (video.FrameWriter, error) {
			return video.NewFFmpegEncoder(ctx, path, params)
		}
	}

	outPath := p.Config.OutputVideo
	if outPath == "" {
		outPath = filepath.Join(p.Config.OutputDir, "presentation.mp4")
	}

	enc, err := newEncoder(ctx, outPath, video.Params{
		Width:     p.Config.Width,
		Height:    p.Config.Height,
		FPS:       p.Config.FPS,
		Encoder:   p.Config.VideoEncoder,
		Quality:   p.Config.Quality,
		AudioPath: p.Config.AudioPath,
	})
	if err != nil {
		return fmt.Errorf("ошибка запуска энкодера: %w", err)
	}

	batch := make([]*image.RGBA, p.workers())
	for from := 0; from < len(frames); from += len(batch) {
		to := min(from+len(batch), len(frames))

		g, gctx := errgroup.WithContext(ctx)
		for i := from; i < to; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				batch[i-from] = p.render(frames[i])
				return nil
			})
		}
		err := g.Wait()

		for i := range to - from {
			img := batch[i]
			batch[i] = nil
			if img == nil {
				continue
			}
			if err == nil {
				if werr := enc.WriteFrame(img); werr != nil {
					err = fmt.Errorf("frame %d: %w", from+i, werr)
				} else {
					p.report(len(frames))
				}
			}
			p.Renderer.Release(img)
		}

		if err != nil {
			enc.Close()
			return err
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("ошибка сборки видео: %w", err)
	}
	fmt.Printf("[*] Видео записано: %s\n", outPath)
	return nil
}

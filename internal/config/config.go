package config

import "fmt"

type Config struct {
	InputPath    string
	OutputDir    string
	OutputVideo  string
	Width        int
	Height       int
	Preset       string
	FPS          int
	HoldFrames   int
	Animated     bool
	Video        bool
	Workers      int
	DPI          int
	StartIndex   int
	AudioPath    string
	VideoEncoder string
	Quality      int
	ShowStats    bool
	BuildVersion string
}

// Presets maps aspect-ratio names to frame sizes.
var Presets = map[string][2]int{
	"16:9": {1280, 720},
	"9:16": {720, 1280},
	"4:5":  {1080, 1350},
}

// ApplyPreset overrides Width and Height from Preset, if set.
func (c *Config) ApplyPreset() error {
	if c.Preset == "" {
		return nil
	}
	size, ok := Presets[c.Preset]
	if !ok {
		return fmt.Errorf("неизвестный пресет %q", c.Preset)
	}
	c.Width, c.Height = size[0], size[1]
	return nil
}

// Validate checks the settings that the exporter relies on.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("некорректное разрешение %dx%d", c.Width, c.Height)
	}
	if c.Video && (c.Width%2 != 0 || c.Height%2 != 0) {
		return fmt.Errorf("для yuv420p размеры кадра должны быть чётными: %dx%d", c.Width, c.Height)
	}
	if (c.Animated || c.Video) && c.FPS <= 0 {
		return fmt.Errorf("некорректный FPS: %d", c.FPS)
	}
	if c.HoldFrames < 0 {
		return fmt.Errorf("некорректное число кадров паузы: %d", c.HoldFrames)
	}
	if c.StartIndex < 0 {
		return fmt.Errorf("некорректный стартовый индекс: %d", c.StartIndex)
	}
	return nil
}

package slide

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an sRGB colour with integer channels in [0, 255] and alpha in [0, 1].
type Color struct {
	Red   int     `yaml:"red"`
	Green int     `yaml:"green"`
	Blue  int     `yaml:"blue"`
	Alpha float64 `yaml:"alpha"`
}

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
)

// RGB returns an opaque colour.
func RGB(r, g, b int) Color {
	return Color{Red: r, Green: g, Blue: b, Alpha: 1}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa". Malformed input yields opaque black and
// an error describing the problem.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	switch len(hex) {
	case 6:
		return Color{
			Red:   int(v>>16) & 255,
			Green: int(v>>8) & 255,
			Blue:  int(v) & 255,
			Alpha: 1,
		}, nil
	case 8:
		return Color{
			Red:   int(v>>24) & 255,
			Green: int(v>>16) & 255,
			Blue:  int(v>>8) & 255,
			Alpha: float64(v&255) / 255,
		}, nil
	default:
		return Black, fmt.Errorf("invalid hex color %q: want 6 or 8 digits", s)
	}
}

// Opaque returns c with alpha 1.
func (c Color) Opaque() Color {
	c.Alpha = 1
	return c
}

// Transparent returns c with alpha 0.
func (c Color) Transparent() Color {
	c.Alpha = 0
	return c
}

// AlphaWith combines the colour's own alpha with a shape opacity.
func (c Color) AlphaWith(opacity float64) float64 {
	return c.Alpha * opacity
}

// Hex formats the colour as "#rrggbb", appending the alpha byte when it isn't 255.
func (c Color) Hex() string {
	s := fmt.Sprintf("#%02x%02x%02x", clampByte(c.Red), clampByte(c.Green), clampByte(c.Blue))
	if a := alphaByte(c.Alpha); a != 255 {
		s += fmt.Sprintf("%02x", a)
	}
	return s
}

// NRGBA converts the colour to a non-premultiplied image colour, scaling alpha by
// opacity.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	return color.NRGBA{
		R: clampByte(c.Red),
		G: clampByte(c.Green),
		B: clampByte(c.Blue),
		A: alphaByte(c.AlphaWith(opacity)),
	}
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA(1).RGBA()
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(a, 0), 1) * 255))
}

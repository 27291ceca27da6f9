package raster

import (
	"image"
	"image/color"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/ivlev/deck2video/internal/slide"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func renderImage(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	if opacity <= 0 {
		return
	}

	src := c.image(o.String("imageId", ""))
	if src == nil {
		return
	}
	b := src.Bounds()
	if b.Empty() {
		return
	}

	w, h := o.Float("width", 100), o.Float("height", 100)
	dx, dy := anchorOffset(o.String("anchor", slide.AnchorTopLeft), w, h)
	x, y := o.Float("x", 0)+dx, o.Float("y", 0)+dy

	target := c
	if r := o.Float("rounding", 0); r > 0 {
		target = c.Clipped(rectPath(x, y, w, h, r))
	}

	local := mul(translate(x, y), mul(
		scale(w/float64(b.Dx()), h/float64(b.Dy())),
		translate(-float64(b.Min.X), -float64(b.Min.Y)),
	))
	target.drawImage(src, local, opacity, o.Bool("smooth", true))
}

var textFace = basicfont.Face7x13

// renderText draws text with a fixed bitmap face. Only the first length runes are
// visible; a negative length shows everything.
func renderText(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	s := o.Float("scale", 1)
	if opacity <= 0 || s <= 0 {
		return
	}

	text := []rune(o.String("text", ""))
	if n := o.Float("length", -1); n >= 0 && int(n) < len(text) {
		text = text[:int(n)]
	}
	lines := strings.Split(string(text), "\n")

	d := &font.Drawer{Face: textFace, Src: image.NewUniform(o.Color("color", slide.Black).NRGBA(1))}
	widths := make([]int, len(lines))
	boxW := 0
	for i, line := range lines {
		widths[i] = d.MeasureString(line).Ceil()
		boxW = max(boxW, widths[i])
	}
	metrics := textFace.Metrics()
	lineHeight := int(math.Ceil(float64(metrics.Height.Ceil()) * o.Float("lineSpacing", 1)))
	boxH := lineHeight*(len(lines)-1) + metrics.Height.Ceil()
	if boxW == 0 || boxH <= 0 {
		return
	}

	layer := image.NewRGBA(image.Rect(0, 0, boxW, boxH))
	d.Dst = layer
	alignment := o.String("alignment", "Left")
	for i, line := range lines {
		left := 0
		switch alignment {
		case "Center":
			left = (boxW - widths[i]) / 2
		case "Right":
			left = boxW - widths[i]
		}
		d.Dot = fixed.P(left, i*lineHeight+metrics.Ascent.Ceil())
		d.DrawString(line)
	}

	dx, dy := anchorOffset(o.String("anchor", slide.AnchorTopLeft), float64(boxW)*s, float64(boxH)*s)
	local := mul(translate(o.Float("x", 0)+dx, o.Float("y", 0)+dy), scale(s, s))
	c.drawImage(layer, local, opacity, true)
}

const qrImageSize = 256

type qrKey struct {
	content string
	color   color.NRGBA
}

var (
	qrMu    sync.Mutex
	qrCache = map[qrKey]image.Image{}
)

func qrImage(content string, col color.NRGBA) image.Image {
	qrMu.Lock()
	defer qrMu.Unlock()

	key := qrKey{content, col}
	if img, ok := qrCache[key]; ok {
		return img
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		log.Printf("[!] QR code %q: %v", content, err)
		return nil
	}
	q.ForegroundColor = col
	q.BackgroundColor = color.Transparent

	img := q.Image(qrImageSize)
	qrCache[key] = img
	return img
}

func renderQRCode(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	content := o.String("content", "")
	if opacity <= 0 || content == "" {
		return
	}

	src := qrImage(content, o.Color("color", slide.Black).NRGBA(1))
	if src == nil {
		return
	}
	b := src.Bounds()

	size := o.Float("size", qrImageSize)
	dx, dy := anchorOffset(o.String("anchor", slide.AnchorTopLeft), size, size)
	local := mul(translate(o.Float("x", 0)+dx, o.Float("y", 0)+dy), mul(
		scale(size/float64(b.Dx()), size/float64(b.Dy())),
		translate(-float64(b.Min.X), -float64(b.Min.Y)),
	))
	c.drawImage(src, local, opacity, false)
}

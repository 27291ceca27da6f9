package raster

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/ivlev/deck2video/internal/slide"
	"github.com/ivlev/deck2video/internal/system"
	"github.com/ivlev/deck2video/internal/timeline"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// ImageProvider supplies decoded images for Image objects.
type ImageProvider interface {
	Image(id string) (image.Image, error)
}

// ObjectRenderer draws one object. current is the object's value in the snapshot;
// opacity is inherited from enclosing containers.
type ObjectRenderer func(c *Canvas, current *slide.Object, opacity float64)

// Renderer turns slide snapshots into frames of a fixed size.
type Renderer struct {
	Width, Height int

	background slide.Color
	size       slide.Size
	assets     ImageProvider
	renderers  map[string]ObjectRenderer
}

// New creates a renderer for p that scales the presentation canvas to
// width×height. assets may be nil when the deck has no images.
func New(p *slide.Presentation, width, height int, assets ImageProvider) *Renderer {
	r := &Renderer{
		Width:      width,
		Height:     height,
		background: p.BackgroundColor,
		size:       p.Size,
		assets:     assets,
		renderers:  map[string]ObjectRenderer{},
	}
	for kind, fn := range defaultRenderers {
		r.renderers[kind] = fn
	}
	return r
}

var defaultRenderers = map[string]ObjectRenderer{
	slide.KindRectangle: renderRectangle,
	slide.KindCircle:    renderCircle,
	slide.KindLine:      renderLine,
	slide.KindPolygon:   renderPolygon,
	slide.KindGroup:     renderGroup,
	slide.KindMask:      renderMask,
	slide.KindImage:     renderImage,
	slide.KindText:      renderText,
	slide.KindQRCode:    renderQRCode,
}

// Register adds or replaces the renderer for kind.
func (r *Renderer) Register(kind string, fn ObjectRenderer) {
	r.renderers[kind] = fn
}

// Render draws s in the state given by snap. The frame comes from the shared
// pool; hand it back with Release when done.
func (r *Renderer) Render(s *slide.Slide, snap timeline.Snapshot) *image.RGBA {
	dst := system.GetImage(r.Width, r.Height)
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.background.NRGBA(1)), image.Point{}, draw.Src)

	m := identity
	if r.size.Width > 0 && r.size.Height > 0 {
		m = scale(float64(r.Width)/float64(r.size.Width), float64(r.Height)/float64(r.size.Height))
	}

	c := &Canvas{r: r, dst: dst, snap: snap, m: m}
	for _, o := range s.Objects {
		c.Object(o, 1)
	}
	return dst
}

// Release returns a frame from Render to the pool.
func (r *Renderer) Release(img *image.RGBA) {
	system.PutImage(img)
}

// Canvas is the drawing state passed to object renderers: the frame, the current
// transform and clip, and the snapshot being drawn.
type Canvas struct {
	r    *Renderer
	dst  *image.RGBA
	snap timeline.Snapshot
	m    f64.Aff3
	clip *image.Alpha
}

// Object draws an authored object in its snapshot state. Objects missing from
// the snapshot or of an unknown kind are skipped.
func (c *Canvas) Object(original *slide.Object, opacity float64) {
	current := c.snap.Get(original)
	if current == nil {
		return
	}
	fn, ok := c.r.renderers[current.Kind()]
	if !ok {
		return
	}
	fn(c, current, opacity)
}

// Transformed returns a canvas whose drawing is mapped through m first.
func (c *Canvas) Transformed(m f64.Aff3) *Canvas {
	next := *c
	next.m = mul(c.m, m)
	return &next
}

// Clipped returns a canvas limited to the inside of p, in local coordinates.
func (c *Canvas) Clipped(p path) *Canvas {
	mask := c.coverage([]path{p})
	next := *c
	next.clip = mask
	return &next
}

// coverage rasterises paths (non-zero winding) through the current transform and
// clip.
func (c *Canvas) coverage(paths []path) *image.Alpha {
	b := c.dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, p := range paths {
		if len(p) < 3 {
			continue
		}
		first := apply(c.m, p[0])
		z.MoveTo(float32(first[0]), float32(first[1]))
		for _, v := range p[1:] {
			q := apply(c.m, v)
			z.LineTo(float32(q[0]), float32(q[1]))
		}
		z.ClosePath()
	}

	mask := image.NewAlpha(b)
	z.Draw(mask, b, image.Opaque, image.Point{})

	if c.clip != nil {
		for i, a := range mask.Pix {
			mask.Pix[i] = uint8(uint16(a) * uint16(c.clip.Pix[i]) / 255)
		}
	}
	return mask
}

func (c *Canvas) fill(paths []path, col slide.Color, opacity float64) {
	nrgba := col.NRGBA(opacity)
	if nrgba.A == 0 {
		return
	}
	mask := c.coverage(paths)
	draw.DrawMask(c.dst, c.dst.Bounds(), image.NewUniform(nrgba), image.Point{}, mask, image.Point{}, draw.Over)
}

// drawImage maps src into local coordinates with local and draws it.
func (c *Canvas) drawImage(src image.Image, local f64.Aff3, opacity float64, smooth bool) {
	a := alpha8(opacity)
	if a == 0 {
		return
	}
	if a < 255 {
		faded := image.NewRGBA(src.Bounds())
		draw.DrawMask(faded, faded.Bounds(), src, src.Bounds().Min, image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Src)
		src = faded
	}

	var interp draw.Interpolator = draw.ApproxBiLinear
	if !smooth {
		interp = draw.NearestNeighbor
	}
	s2d := mul(c.m, local)

	if c.clip == nil {
		interp.Transform(c.dst, s2d, src, src.Bounds(), draw.Over, nil)
		return
	}

	layer := image.NewRGBA(c.dst.Bounds())
	interp.Transform(layer, s2d, src, src.Bounds(), draw.Over, nil)
	draw.DrawMask(c.dst, c.dst.Bounds(), layer, image.Point{}, c.clip, image.Point{}, draw.Over)
}

func (c *Canvas) image(id string) image.Image {
	if c.r.assets == nil {
		return nil
	}
	img, err := c.r.assets.Image(id)
	if err != nil {
		log.Printf("[!] Image %q: %v", id, err)
		return nil
	}
	return img
}

func alpha8(opacity float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(opacity, 0), 1) * 255))
}

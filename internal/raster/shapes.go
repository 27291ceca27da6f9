package raster

import (
	"github.com/ivlev/deck2video/internal/slide"
	"golang.org/x/image/math/f64"
)

func point(o *slide.Object, name string) f64.Vec2 {
	v, _ := o.Get(name)
	p, _ := v.(slide.Point)
	return f64.Vec2{p.X, p.Y}
}

// ring is the band of the given width centred on the outline of outer, traced as
// the outer path plus the reversed inner path.
func ring(outer, inner path) []path {
	return []path{outer, reversed(inner)}
}

func renderRectangle(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	if opacity <= 0 {
		return
	}

	w, h := o.Float("width", 100), o.Float("height", 100)
	dx, dy := anchorOffset(o.String("anchor", slide.AnchorTopLeft), w, h)
	x, y := o.Float("x", 0)+dx, o.Float("y", 0)+dy
	rounding := o.Float("rounding", 0)

	c.fill([]path{rectPath(x, y, w, h, rounding)}, o.Color("fill", slide.Black), opacity)

	if bw := o.Float("borderWidth", 0); bw > 0 {
		outer := rectPath(x-bw/2, y-bw/2, w+bw, h+bw, rounding+bw/2)
		inner := rectPath(x+bw/2, y+bw/2, w-bw, h-bw, rounding-bw/2)
		if w <= bw || h <= bw {
			c.fill([]path{outer}, o.Color("borderColor", slide.Black), opacity)
			return
		}
		c.fill(ring(outer, inner), o.Color("borderColor", slide.Black), opacity)
	}
}

func renderCircle(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	if opacity <= 0 {
		return
	}

	r := o.Float("radius", 50)
	dx, dy := anchorOffset(o.String("anchor", slide.AnchorCenter), 2*r, 2*r)
	cx, cy := o.Float("x", 0)+dx+r, o.Float("y", 0)+dy+r

	c.fill([]path{circlePath(cx, cy, r)}, o.Color("fill", slide.Black), opacity)

	if bw := o.Float("borderWidth", 0); bw > 0 {
		outer := circlePath(cx, cy, r+bw/2)
		if r <= bw/2 {
			c.fill([]path{outer}, o.Color("borderColor", slide.Black), opacity)
			return
		}
		c.fill(ring(outer, circlePath(cx, cy, r-bw/2)), o.Color("borderColor", slide.Black), opacity)
	}
}

func renderLine(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	drawn := o.Float("drawn", 1)
	if opacity <= 0 || drawn <= 0 {
		return
	}

	start, end := point(o, "start"), point(o, "end")
	end = f64.Vec2{start[0] + (end[0]-start[0])*drawn, start[1] + (end[1]-start[1])*drawn}

	if seg := segmentPath(start, end, o.Float("width", 1)); seg != nil {
		c.fill([]path{seg}, o.Color("color", slide.Black), opacity)
	}
}

func renderPolygon(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	points := o.Points("points")
	if opacity <= 0 || len(points) < 2 {
		return
	}

	outline := make(path, len(points))
	for i, p := range points {
		outline[i] = f64.Vec2{p.X, p.Y}
	}
	c.fill([]path{outline}, o.Color("fill", slide.Black), opacity)

	if bw := o.Float("borderWidth", 0); bw > 0 {
		var edges []path
		for i := range outline {
			if seg := segmentPath(outline[i], outline[(i+1)%len(outline)], bw); seg != nil {
				edges = append(edges, seg)
			}
		}
		c.fill(edges, o.Color("borderColor", slide.Black), opacity)
	}
}

// renderGroup positions its children relative to the group's anchored origin,
// then scales and rotates them around it.
func renderGroup(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	s := o.Float("scale", 1)
	if opacity <= 0 || s == 0 {
		return
	}

	dx, dy := anchorOffset(o.String("anchor", slide.AnchorTopLeft), o.Float("width", 0)*s, o.Float("height", 0)*s)
	m := mul(translate(o.Float("x", 0)+dx, o.Float("y", 0)+dy), mul(scale(s, s), rotate(o.Float("rotation", 0))))

	inner := c.Transformed(m)
	for _, child := range o.Objects(slide.ChildrenProp) {
		inner.Object(child, opacity)
	}
}

// renderMask clips its children to the mask rectangle. Children keep the
// parent's coordinates.
func renderMask(c *Canvas, o *slide.Object, opacity float64) {
	opacity *= o.Opacity()
	if opacity <= 0 {
		return
	}

	w, h := o.Float("width", 100), o.Float("height", 100)
	dx, dy := anchorOffset(o.String("anchor", slide.AnchorTopLeft), w, h)
	x, y := o.Float("x", 0)+dx, o.Float("y", 0)+dy
	area := rectPath(x, y, w, h, 0)

	inner := c.Clipped(area)
	for _, child := range o.Objects(slide.ChildrenProp) {
		inner.Object(child, opacity)
	}

	if o.Bool("preview", false) {
		outer := rectPath(x-2, y-2, w+4, h+4, 0)
		c.fill(ring(outer, area), slide.Red, 1)
	}
}

package raster

import (
	"math"

	"golang.org/x/image/math/f64"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// mul returns a·b: b is applied first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func translate(x, y float64) f64.Aff3 {
	return f64.Aff3{1, 0, x, 0, 1, y}
}

func scale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

func rotate(degrees float64) f64.Aff3 {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return f64.Aff3{c, -s, 0, s, c, 0}
}

func apply(m f64.Aff3, p f64.Vec2) f64.Vec2 {
	return f64.Vec2{m[0]*p[0] + m[1]*p[1] + m[2], m[3]*p[0] + m[4]*p[1] + m[5]}
}

// anchorOffset returns where the top-left corner of a w×h box lies relative to
// its anchor point.
func anchorOffset(anchor string, w, h float64) (float64, float64) {
	switch anchor {
	case "Top":
		return -w / 2, 0
	case "TopRight":
		return -w, 0
	case "Left":
		return 0, -h / 2
	case "Center":
		return -w / 2, -h / 2
	case "Right":
		return -w, -h / 2
	case "BottomLeft":
		return 0, -h
	case "Bottom":
		return -w / 2, -h
	case "BottomRight":
		return -w, -h
	default:
		return 0, 0
	}
}

type path []f64.Vec2

func reversed(p path) path {
	out := make(path, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

const arcSegments = 64

// arc appends points along a circular arc from a0 to a1 radians.
func arc(p path, cx, cy, r, a0, a1 float64, segments int) path {
	for i := 0; i <= segments; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(segments)
		p = append(p, f64.Vec2{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return p
}

func circlePath(cx, cy, r float64) path {
	return arc(nil, cx, cy, r, 0, 2*math.Pi, arcSegments)[:arcSegments]
}

// rectPath traces a rectangle clockwise, with quarter-circle corners when
// rounding is positive.
func rectPath(x, y, w, h, rounding float64) path {
	rounding = math.Min(rounding, math.Min(w, h)/2)
	if rounding <= 0 {
		return path{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	}

	const corner = arcSegments / 4
	var p path
	p = arc(p, x+w-rounding, y+rounding, rounding, -math.Pi/2, 0, corner)
	p = arc(p, x+w-rounding, y+h-rounding, rounding, 0, math.Pi/2, corner)
	p = arc(p, x+rounding, y+h-rounding, rounding, math.Pi/2, math.Pi, corner)
	p = arc(p, x+rounding, y+rounding, rounding, math.Pi, 3*math.Pi/2, corner)
	return p
}

// segmentPath is the quad covering a line of the given width from a to b.
func segmentPath(a, b f64.Vec2, width float64) path {
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return nil
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	return path{
		{a[0] + nx, a[1] + ny},
		{b[0] + nx, b[1] + ny},
		{b[0] - nx, b[1] - ny},
		{a[0] - nx, a[1] - ny},
	}
}

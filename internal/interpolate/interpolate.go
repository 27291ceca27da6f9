package interpolate

import (
	"math"

	"github.com/ivlev/deck2video/internal/slide"
)

// Lerp performs linear interpolation between a and b. It returns a exactly at
// t=0 and b exactly at t=1.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

type number struct{}

// Number blends float64 values linearly.
var Number slide.Interpolator = number{}

func (number) Check(value any, _ string) bool {
	_, ok := value.(float64)
	return ok
}

func (number) Interpolate(from, to any, p float64) any {
	return Lerp(from.(float64), to.(float64), p)
}

type colorInterpolator struct{}

// Color blends RGB channels as rounded integers and alpha as a float.
var Color slide.Interpolator = colorInterpolator{}

func (colorInterpolator) Check(value any, _ string) bool {
	_, ok := value.(slide.Color)
	return ok
}

func (colorInterpolator) Interpolate(from, to any, p float64) any {
	a, b := from.(slide.Color), to.(slide.Color)
	return slide.Color{
		Red:   lerpChannel(a.Red, b.Red, p),
		Green: lerpChannel(a.Green, b.Green, p),
		Blue:  lerpChannel(a.Blue, b.Blue, p),
		Alpha: Lerp(a.Alpha, b.Alpha, p),
	}
}

func lerpChannel(a, b int, p float64) int {
	return int(math.Round(Lerp(float64(a), float64(b), p)))
}

type points struct{}

// Points blends equal-length point lists pointwise and snaps to the target when
// the lengths differ. It is not a default; add it to a step to morph polygons.
var Points slide.Interpolator = points{}

func (points) Check(value any, _ string) bool {
	_, ok := value.([]slide.Point)
	return ok
}

func (points) Interpolate(from, to any, p float64) any {
	a, b := from.([]slide.Point), to.([]slide.Point)
	if len(a) != len(b) {
		return b
	}
	out := make([]slide.Point, len(a))
	for i := range a {
		out[i] = slide.Point{X: Lerp(a[i].X, b[i].X, p), Y: Lerp(a[i].Y, b[i].Y, p)}
	}
	return out
}

type fallback struct{}

// Fallback accepts any value and snaps to the target.
var Fallback slide.Interpolator = fallback{}

func (fallback) Check(any, string) bool { return true }

func (fallback) Interpolate(_, to any, _ float64) any { return to }

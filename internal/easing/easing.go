package easing

import (
	"fmt"
	"math"
	"strings"
)

// Func maps animation progress in [0, 1] to an eased value. Overshooting curves
// may return values outside [0, 1].
type Func func(t float64) float64

// backOvershoot matches the overshoot used by the BACK_IN_OUT preset.
const backOvershoot = 0.8

// Linear is the identity curve and the default for Animate steps.
func Linear(t float64) float64 {
	return t
}

// Cubic is the symmetric cubic in-out curve.
func Cubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// CubicIn starts slow and finishes fast.
func CubicIn(t float64) float64 {
	return t * t * t
}

// CubicOut starts fast and finishes slow.
func CubicOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// BackInOut pulls back before starting and overshoots before settling.
func BackInOut(t float64) float64 {
	s := backOvershoot
	t *= 2
	if t < 1 {
		return t * t * ((s+1)*t - s) / 2
	}
	t -= 2
	return (t*t*((s+1)*t+s) + 2) / 2
}

// Smoothstep is the cubic Hermite curve, clamped to [0, 1].
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

var byName = map[string]Func{
	"linear":      Linear,
	"cubic":       Cubic,
	"cubic-in":    CubicIn,
	"cubic-out":   CubicOut,
	"back-in-out": BackInOut,
	"smoothstep":  Smoothstep,
}

// ByName looks up a curve by its deck-file name. Names are case-insensitive and
// accept "_" in place of "-".
func ByName(name string) (Func, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if key == "" {
		return Linear, nil
	}
	f, ok := byName[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return f, nil
}

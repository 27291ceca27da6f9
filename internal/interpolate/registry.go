package interpolate

import "github.com/ivlev/deck2video/internal/slide"

// Registry is an ordered list of interpolators; the first one that accepts both
// endpoints wins.
type Registry []slide.Interpolator

// Default returns number, color and fallback, in that order.
func Default() Registry {
	return Registry{Number, Color, Fallback}
}

// With returns a new registry with custom ahead of r. r is not modified.
func (r Registry) With(custom []slide.Interpolator) Registry {
	if len(custom) == 0 {
		return r
	}
	out := make(Registry, 0, len(custom)+len(r))
	out = append(out, custom...)
	return append(out, r...)
}

// Value blends a single property. ok is false when no interpolator accepts both
// endpoints.
func (r Registry) Value(from, to any, property string, proportion float64) (v any, ok bool) {
	for _, in := range r {
		if in.Check(from, property) && in.Check(to, property) {
			return in.Interpolate(from, to, proportion), true
		}
	}
	return nil, false
}

// Blend returns current with every property named in patch moved proportion of
// the way toward its target. Proportion 0 returns current itself and 1 applies
// the patch verbatim.
func (r Registry) Blend(current *slide.Object, patch slide.Props, proportion float64) *slide.Object {
	switch proportion {
	case 0:
		return current
	case 1:
		return current.With(patch)
	}

	blended := make(slide.Props, len(patch))
	for key, to := range patch {
		from, _ := current.Get(key)
		if v, ok := r.Value(from, to, key, proportion); ok {
			blended[key] = v
		}
	}
	return current.With(blended)
}

package timeline

import (
	"github.com/ivlev/deck2video/internal/easing"
	"github.com/ivlev/deck2video/internal/interpolate"
	"github.com/ivlev/deck2video/internal/slide"
)

// Snapshot maps each authored object, by identity, to its current value.
type Snapshot map[*slide.Object]*slide.Object

// Get returns the current value of an authored object, or nil if the object is
// not part of the slide.
func (s Snapshot) Get(original *slide.Object) *slide.Object {
	return s[original]
}

var defaultInterpolators = interpolate.Default()

// Resolve returns the settled state of slide after buildIndex builds have
// completed. Callers keep buildIndex within [0, len(slide.Builds)]; builds past
// the end are ignored.
func Resolve(s *slide.Slide, buildIndex int) Snapshot {
	return resolve(s, buildIndex, 0, false)
}

// ResolveAt returns the state buildTime milliseconds into build buildIndex-1,
// i.e. on the way from buildIndex-1 to buildIndex. For buildIndex 0 it returns the
// initial state.
func ResolveAt(s *slide.Slide, buildIndex int, buildTime float64) Snapshot {
	return resolve(s, buildIndex, buildTime, true)
}

func resolve(s *slide.Slide, buildIndex int, buildTime float64, scrubbing bool) Snapshot {
	snap := Snapshot{}
	if s == nil {
		return snap
	}

	for _, o := range s.Objects {
		snap.seed(o)
	}

	completed := buildIndex
	if scrubbing {
		completed = buildIndex - 1
	}
	for i := 0; i < completed && i < len(s.Builds); i++ {
		snap.apply(s.Builds[i], 0, false)
	}

	if scrubbing && buildIndex > 0 && buildIndex <= len(s.Builds) {
		snap.apply(s.Builds[buildIndex-1], buildTime, true)
	}

	return snap
}

func (snap Snapshot) seed(o *slide.Object) {
	if o == nil {
		return
	}
	snap[o] = o
	for _, child := range o.Children() {
		snap.seed(child)
	}
}

// apply folds one build into the snapshot. With scrubbing unset every animation
// runs to completion.
func (snap Snapshot) apply(build slide.Build, buildTime float64, scrubbing bool) {
	elapsed := 0.0

	for _, step := range build {
		if scrubbing && elapsed > buildTime {
			break
		}

		switch s := step.(type) {
		case *slide.AnimateStep:
			current, ok := snap[s.Object]
			if !ok {
				break
			}
			p := 1.0
			if scrubbing {
				p = progress(buildTime-elapsed, s.Delay, s.Duration)
			}
			ease := s.Easing
			if ease == nil {
				ease = easing.Linear
			}
			snap[s.Object] = defaultInterpolators.With(s.Interpolators).Blend(current, s.Props, ease(p))
			if s.Block {
				elapsed += s.Delay + s.Duration
			}
		case *slide.UpdateStep:
			current, ok := snap[s.Object]
			if !ok {
				break
			}
			snap[s.Object] = current.With(s.Props)
		case *slide.PauseStep:
			elapsed += s.Duration
		default:
			panic(unreachable(step))
		}
	}
}

// progress is the fraction of an animation completed t ms after its build slot
// opened, clamped to [0, 1]. Non-positive durations complete immediately.
func progress(t, delay, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return easing.Clamp((t-delay)/duration, 0, 1)
}

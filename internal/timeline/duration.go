package timeline

import (
	"fmt"
	"math"

	"github.com/ivlev/deck2video/internal/slide"
)

// Duration returns how long build takes to finish, in milliseconds. Pauses and
// blocking animations push back the start of later steps; updates take no time.
func Duration(build slide.Build) float64 {
	startTime := 0.0
	duration := 0.0

	for _, step := range build {
		switch s := step.(type) {
		case *slide.PauseStep:
			startTime += s.Duration
		case *slide.AnimateStep:
			duration = math.Max(duration, startTime+s.Delay+s.Duration)
			if s.Block {
				startTime += s.Delay + s.Duration
			}
		case *slide.UpdateStep:
		default:
			panic(unreachable(step))
		}
	}

	return duration
}

// SlideDuration sums the durations of all builds of a slide.
func SlideDuration(s *slide.Slide) float64 {
	total := 0.0
	for _, b := range s.Builds {
		total += Duration(b)
	}
	return total
}

func unreachable(step slide.Step) string {
	return fmt.Sprintf("unreachable: unknown step type %T", step)
}

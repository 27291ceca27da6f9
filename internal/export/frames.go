package export

import (
	"fmt"
	"math"

	"github.com/ivlev/deck2video/internal/slide"
	"github.com/ivlev/deck2video/internal/timeline"
)

// Frame identifies one exported image: a slide state either settled after
// BuildIndex builds or BuildTime milliseconds into build BuildIndex-1.
type Frame struct {
	SlideIndex int
	BuildIndex int
	BuildTime  float64
	Scrubbing  bool
}

// Snapshot resolves the frame's object state.
func (f Frame) Snapshot(s *slide.Slide) timeline.Snapshot {
	if f.Scrubbing {
		return timeline.ResolveAt(s, f.BuildIndex, f.BuildTime)
	}
	return timeline.Resolve(s, f.BuildIndex)
}

// FileName returns the image name for the index-th exported frame.
func FileName(index int) string {
	return fmt.Sprintf("%04d.png", index)
}

// KeyFrames lists the key builds of every slide in slide-then-build order.
func KeyFrames(p *slide.Presentation) []Frame {
	var frames []Frame
	for i, s := range p.Slides {
		if s == nil {
			continue
		}
		for _, b := range timeline.KeyBuilds(s) {
			frames = append(frames, Frame{SlideIndex: i, BuildIndex: b})
		}
	}
	return frames
}

// PlaybackTime is the total build time of the presentation in milliseconds,
// excluding hold frames.
func PlaybackTime(p *slide.Presentation) float64 {
	total := 0.0
	for _, s := range p.Slides {
		if s != nil {
			total += timeline.SlideDuration(s)
		}
	}
	return total
}

// AnimatedFrames lists every frame of a full playback at fps. Each slide opens
// with hold copies of its initial state; each build is sampled
// ceil(duration/1000*fps) times and followed by hold copies of its settled state.
func AnimatedFrames(p *slide.Presentation, fps, hold int) []Frame {
	var frames []Frame
	for i, s := range p.Slides {
		if s == nil {
			continue
		}

		for range hold {
			frames = append(frames, Frame{SlideIndex: i})
		}

		for b, build := range s.Builds {
			duration := timeline.Duration(build)
			total := int(math.Ceil(duration / 1000 * float64(fps)))
			for f := range total {
				frames = append(frames, Frame{
					SlideIndex: i,
					BuildIndex: b + 1,
					BuildTime:  float64(f) * (duration / float64(total)),
					Scrubbing:  true,
				})
			}
			for range hold {
				frames = append(frames, Frame{SlideIndex: i, BuildIndex: b + 1})
			}
		}
	}
	return frames
}

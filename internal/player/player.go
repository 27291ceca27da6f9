package player

import (
	"errors"
	"log"
	"time"

	"github.com/ivlev/deck2video/internal/navigator"
	"github.com/ivlev/deck2video/internal/slide"
	"github.com/ivlev/deck2video/internal/storage"
	"github.com/ivlev/deck2video/internal/timeline"
)

// Frame is one rendered state of the presentation.
type Frame struct {
	SlideIndex int
	BuildIndex int
	// BuildTime is the time into build BuildIndex-1 while it plays.
	BuildTime float64
	Settled   bool
	Slide     *slide.Slide
	Snapshot  timeline.Snapshot
}

// Renderer draws frames for a host.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f Frame)

func (fn RendererFunc) Render(f Frame) { fn(f) }

// Option configures a Player.
type Option func(*Player)

// WithStore persists every settled position to store.
func WithStore(store *storage.Store) Option {
	return func(p *Player) { p.store = store }
}

// WithClock overrides the time source used to start playback.
func WithClock(now func() time.Time) Option {
	return func(p *Player) { p.now = now }
}

// Player holds the presenter position and plays builds through a Renderer.
// Calls must come from one goroutine, normally the host's update loop.
type Player struct {
	presentation *slide.Presentation
	renderer     Renderer
	store        *storage.Store
	scheduler    Scheduler
	now          func() time.Time

	slideIndex int
	buildIndex int
}

// New creates a player positioned at the start of p. Nothing is drawn until
// Show, Resume or a navigation call.
func New(p *slide.Presentation, r Renderer, opts ...Option) *Player {
	pl := &Player{presentation: p, renderer: r, now: time.Now}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// Position returns the slide and build last drawn.
func (pl *Player) Position() navigator.Target {
	return navigator.Target{SlideIndex: pl.slideIndex, BuildIndex: pl.buildIndex}
}

// Playing reports whether a build is being animated.
func (pl *Player) Playing() bool {
	return pl.scheduler.Active()
}

// Resume shows the saved position if the store has a usable one, otherwise the
// first slide.
func (pl *Player) Resume(ttl time.Duration) {
	if pl.store != nil {
		st, err := pl.store.Load(pl.presentation, ttl)
		switch {
		case err == nil:
			log.Printf("[*] Resuming at slide %d, build %d", st.SlideIndex+1, st.BuildIndex)
			pl.Show(st.SlideIndex, st.BuildIndex)
			return
		case !errors.Is(err, storage.ErrNoState):
			log.Printf("[!] Could not restore position: %v", err)
		}
	}
	pl.Show(0, 0)
}

// Show cancels playback and draws the settled state of a slide and build.
func (pl *Player) Show(slideIndex, buildIndex int) {
	pl.scheduler.Cancel()
	pl.render(slideIndex, buildIndex, 0, true)
}

// Jump shows t, staying on the current slide for navigator.CurrentSlide.
func (pl *Player) Jump(t navigator.Target) {
	t = t.Resolve(pl.Position())
	pl.Show(t.SlideIndex, t.BuildIndex)
}

// Next plays the next build, or moves to the next slide when there is none.
// With skip set it moves to the next slide straight away.
func (pl *Player) Next(skip bool) {
	pl.scheduler.Cancel()

	current := pl.presentation.Slide(pl.slideIndex)
	if current == nil {
		return
	}

	slideIndex, buildIndex := pl.slideIndex, pl.buildIndex
	if buildIndex >= 0 && buildIndex < len(current.Builds) && !skip {
		duration := timeline.Duration(current.Builds[buildIndex])
		pl.scheduler.Start(pl.now(), duration, func(elapsed float64, done bool) {
			pl.render(slideIndex, buildIndex+1, elapsed, done)
		})
		return
	}

	if slideIndex+1 < len(pl.presentation.Slides) {
		pl.Show(slideIndex+1, 0)
	}
}

// Previous steps back one build, or to the end of the previous slide. With skip
// set it goes to the start of the slide instead.
func (pl *Player) Previous(skip bool) {
	pl.scheduler.Cancel()

	switch {
	case pl.buildIndex > 0:
		if skip {
			pl.Show(pl.slideIndex, 0)
		} else {
			pl.Show(pl.slideIndex, pl.buildIndex-1)
		}
	case pl.slideIndex > 0:
		build := 0
		if prev := pl.presentation.Slide(pl.slideIndex - 1); prev != nil && !skip {
			build = prev.BuildCount()
		}
		pl.Show(pl.slideIndex-1, build)
	default:
		pl.Show(0, 0)
	}
}

// Apply carries out a navigation request. Requests that need host UI, such as
// showing the slide list, are left to the caller.
func (pl *Player) Apply(req navigator.Request) {
	switch req.Action {
	case navigator.ActionNext:
		pl.Next(req.Skip)
	case navigator.ActionPrevious:
		pl.Previous(req.Skip)
	case navigator.ActionJump:
		pl.Jump(req.Target)
	}
}

// Tick advances playback; hosts call it once per frame.
func (pl *Player) Tick(now time.Time) {
	pl.scheduler.Tick(now)
}

func (pl *Player) render(slideIndex, buildIndex int, buildTime float64, settled bool) {
	pl.slideIndex = slideIndex
	pl.buildIndex = buildIndex

	if settled && pl.store != nil {
		if err := pl.store.Save(pl.presentation.Title, slideIndex, buildIndex); err != nil {
			log.Printf("[!] Failed to save position: %v", err)
		}
	}

	s := pl.presentation.Slide(slideIndex)
	if s == nil {
		return
	}

	f := Frame{
		SlideIndex: slideIndex,
		BuildIndex: buildIndex,
		Settled:    settled,
		Slide:      s,
	}
	if settled {
		f.Snapshot = timeline.Resolve(s, buildIndex)
	} else {
		f.BuildTime = buildTime
		f.Snapshot = timeline.ResolveAt(s, buildIndex, buildTime)
	}
	pl.renderer.Render(f)
}

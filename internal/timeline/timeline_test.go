package timeline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ivlev/deck2video/internal/easing"
	"github.com/ivlev/deck2video/internal/slide"
)

func TestDuration(t *testing.T) {
	box := slide.Rectangle(nil)
	x := slide.Props{"x": 100}

	tests := []struct {
		name  string
		build slide.Build
		want  float64
	}{
		{"empty", slide.Build{}, 0},
		{"single animate", slide.Single(slide.Animate(box, x)), 1000},
		{"update only", slide.Single(slide.Update(box, x)), 0},
		{"trailing pause", slide.Build{slide.Animate(box, x, slide.WithDuration(300)), slide.Pause(2000)}, 300},
		{"pause then delayed animate", slide.Build{
			slide.Pause(500),
			slide.Animate(box, x, slide.WithDelay(200)),
		}, 1700},
		{"parallel takes the longest", slide.Parallel(
			slide.Animate(box, x, slide.WithDuration(400)),
			slide.Animate(box, x, slide.WithDuration(900)),
		), 900},
		{"blocking chain", slide.Build{
			slide.Animate(box, x, slide.WithDuration(500), slide.Blocking()),
			slide.Animate(box, x, slide.WithDuration(500)),
		}, 1000},
		{"negative duration", slide.Single(slide.Animate(box, x, slide.WithDuration(-100))), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.build); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSlideDuration(t *testing.T) {
	box := slide.Rectangle(nil)
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Single(slide.Animate(box, slide.Props{"x": 1}, slide.WithDuration(250))),
		slide.Single(slide.Update(box, slide.Props{"x": 2})),
		slide.Single(slide.Animate(box, slide.Props{"x": 3})),
	})
	if got := SlideDuration(s); got != 1250 {
		t.Errorf("Expected 1250, got %v", got)
	}
}

func TestResolveInitialState(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 10})
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Single(slide.Animate(box, slide.Props{"x": 100})),
	})

	snap := Resolve(s, 0)
	if snap.Get(box) != box {
		t.Error("Build 0 should map every object to itself")
	}
	if snap.Get(slide.Rectangle(nil)) != nil {
		t.Error("Unknown objects should resolve to nil")
	}
}

func TestResolveSeedsChildren(t *testing.T) {
	dot := slide.Circle(nil)
	inner := slide.Group([]*slide.Object{dot}, nil)
	outer := slide.Group([]*slide.Object{inner}, nil)
	s := slide.NewSlide([]*slide.Object{outer}, []slide.Build{
		slide.Single(slide.Update(dot, slide.Props{"radius": 5})),
	})

	snap := Resolve(s, 1)
	if len(snap) != 3 {
		t.Fatalf("Expected 3 objects in snapshot, got %d", len(snap))
	}
	if got := snap.Get(dot).Float("radius", 0); got != 5 {
		t.Errorf("Nested object was not updated: radius = %v", got)
	}
	// the group value itself keeps the authored child reference
	if snap.Get(outer) != outer {
		t.Error("Group should be untouched")
	}
}

func TestResolveBlocking(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0, "y": 0})
	build := slide.Build{
		slide.Animate(box, slide.Props{"x": 100}, slide.WithDuration(500), slide.Blocking()),
		slide.Animate(box, slide.Props{"y": 100}, slide.WithDuration(500)),
	}
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{build})

	if d := Duration(build); d != 1000 {
		t.Fatalf("Expected duration 1000, got %v", d)
	}

	tests := []struct {
		at   float64
		x, y float64
	}{
		{0, 0, 0},
		{250, 50, 0},
		{500, 100, 0},
		{750, 100, 50},
		{1000, 100, 100},
		{5000, 100, 100},
	}

	for _, tt := range tests {
		got := ResolveAt(s, 1, tt.at).Get(box)
		if x := got.Float("x", -1); math.Abs(x-tt.x) > 1e-9 {
			t.Errorf("t=%v: x = %v, want %v", tt.at, x, tt.x)
		}
		if y := got.Float("y", -1); math.Abs(y-tt.y) > 1e-9 {
			t.Errorf("t=%v: y = %v, want %v", tt.at, y, tt.y)
		}
	}
}

func TestResolveAtIsMonotonic(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0})
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Single(slide.Animate(box, slide.Props{"x": 100}, slide.WithEasing(easing.Cubic), slide.WithDelay(100))),
	})

	prev := -1.0
	for ms := 0.0; ms <= 1200; ms += 25 {
		x := ResolveAt(s, 1, ms).Get(box).Float("x", -1)
		if x < prev {
			t.Fatalf("x went backwards at t=%v: %v < %v", ms, x, prev)
		}
		prev = x
	}
	if prev != 100 {
		t.Errorf("Expected the scrub to end at 100, got %v", prev)
	}
}

func TestUpdateWaitsForItsSlot(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0})
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Build{
			slide.Update(box, slide.Props{"fill": slide.Red}),
			slide.Pause(500),
			slide.Update(box, slide.Props{"x": 5}),
		},
	})

	early := ResolveAt(s, 1, 200).Get(box)
	if early.Color("fill", slide.Black) != slide.Red {
		t.Error("An update at the start of the build should apply at t=0")
	}
	if early.Float("x", -1) != 0 {
		t.Error("An update behind a pause should not apply before the pause ends")
	}

	if late := ResolveAt(s, 1, 600).Get(box); late.Float("x", -1) != 5 {
		t.Errorf("Expected x=5 after the pause, got %v", late.Float("x", -1))
	}
}

func TestSettledMatchesEndOfScrub(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0, "fill": slide.Black})
	label := slide.Text("hello", slide.Props{"length": 0})
	s := slide.NewSlide([]*slide.Object{box, label}, []slide.Build{
		slide.Build{
			slide.Animate(box, slide.Props{"x": 300, "fill": slide.RGB(20, 40, 60)}, slide.WithEasing(easing.Cubic), slide.Blocking()),
			slide.Pause(250),
			slide.WriteOn(label, slide.WithDelay(100)),
		},
		slide.Single(slide.FadeOut(box)),
	})

	for k := 1; k <= len(s.Builds); k++ {
		settled := Resolve(s, k)
		scrubbed := ResolveAt(s, k, Duration(s.Builds[k-1]))
		if diff := cmp.Diff(settled, scrubbed); diff != "" {
			t.Errorf("build %d: settled state differs from end of scrub (-settled +scrubbed):\n%s", k, diff)
		}
	}
}

func TestResolveAtZeroIsPreviousBuild(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0})
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Single(slide.Animate(box, slide.Props{"x": 100})),
		slide.Single(slide.Animate(box, slide.Props{"x": 200})),
	})

	if diff := cmp.Diff(Resolve(s, 1), ResolveAt(s, 2, 0)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Resolve(s, 0), ResolveAt(s, 0, 300)); diff != "" {
		t.Errorf("build 0 should ignore the build time (-want +got):\n%s", diff)
	}
}

func TestResolveSkipsUnknownObjects(t *testing.T) {
	box := slide.Rectangle(nil)
	stranger := slide.Circle(nil)
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Build{
			slide.Animate(stranger, slide.Props{"x": 10}),
			slide.Update(stranger, slide.Props{"x": 10}),
			slide.Update(box, slide.Props{"x": 42}),
		},
	})

	snap := ResolveAt(s, 1, 500)
	if len(snap) != 1 {
		t.Errorf("Snapshot should not grow, got %d entries", len(snap))
	}
	if got := snap.Get(box).Float("x", -1); got != 42 {
		t.Errorf("Later steps should still run, x = %v", got)
	}
}

func TestNonPositiveDurationSaturates(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0})
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Single(slide.Animate(box, slide.Props{"x": 100}, slide.WithDuration(0))),
	})
	if got := ResolveAt(s, 1, 0).Get(box).Float("x", -1); got != 100 {
		t.Errorf("Expected 100, got %v", got)
	}
}

func TestResolvePastTheEnd(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0})
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Single(slide.Animate(box, slide.Props{"x": 100})),
	})
	if diff := cmp.Diff(Resolve(s, 1), Resolve(s, 7)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestKeyBuilds(t *testing.T) {
	box := slide.Rectangle(nil)
	step := func(opts ...slide.Option) slide.Build {
		return slide.Single(slide.Animate(box, slide.Props{"x": 1}, opts...))
	}

	tests := []struct {
		name   string
		builds []slide.Build
		opts   []slide.SlideOption
		want   []int
	}{
		{"end key only", []slide.Build{step(), step(slide.Key()), step()}, nil, []int{2, 3}},
		{"start and end", []slide.Build{step(), step(slide.Key()), step()}, []slide.SlideOption{slide.StartKey(true)}, []int{0, 2, 3}},
		{"last build key", []slide.Build{step(), step(slide.Key())}, nil, []int{2}},
		{"no builds", nil, []slide.SlideOption{slide.StartKey(true)}, []int{0}},
		{"nothing key", []slide.Build{step()}, []slide.SlideOption{slide.EndKey(false)}, nil},
		{"all", []slide.Build{step(), step()}, []slide.SlideOption{slide.AllKey(true)}, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := slide.NewSlide([]*slide.Object{box}, tt.builds, tt.opts...)
			if diff := cmp.Diff(tt.want, KeyBuilds(s)); diff != "" {
				t.Errorf("KeyBuilds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateIsInstantBesideAnimate(t *testing.T) {
	box := slide.Rectangle(slide.Props{"x": 0, "y": 0})
	s := slide.NewSlide([]*slide.Object{box}, []slide.Build{
		slide.Parallel(
			slide.Update(box, slide.Props{"x": 0.1}),
			slide.Animate(box, slide.Props{"y": 10}, slide.WithDuration(1000)),
		),
	})

	got := ResolveAt(s, 1, 1).Get(box)
	if x := got.Float("x", -1); x != 0.1 {
		t.Errorf("Expected the update to be fully applied at t=1, got x=%v", x)
	}
	if y := got.Float("y", -1); y <= 0 || y >= 10 {
		t.Errorf("Expected the animation to be part way at t=1, got y=%v", y)
	}
}

func TestResolveIsRepeatable(t *testing.T) {
	box := slide.Rectangle(nil)
	dot := slide.Circle(nil)
	s := slide.NewSlide([]*slide.Object{box, dot}, []slide.Build{
		slide.Single(slide.Animate(box, slide.Props{"x": 100, "fill": slide.Blue})),
		slide.Parallel(
			slide.Hide(dot),
			slide.Animate(box, slide.Props{"y": 50}, slide.WithDelay(100), slide.Blocking()),
		),
	})

	for i := 0; i <= s.BuildCount(); i++ {
		if diff := cmp.Diff(Resolve(s, i), Resolve(s, i)); diff != "" {
			t.Errorf("Resolve(s, %d) differs between calls (-first +second):\n%s", i, diff)
		}
	}
}

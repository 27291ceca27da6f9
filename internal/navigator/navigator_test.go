package navigator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ivlev/deck2video/internal/slide"
)

func samplePresentation() *slide.Presentation {
	text := slide.Text("Hello!", nil)
	box := slide.Rectangle(nil)
	return slide.NewPresentation("Sample",
		slide.NewSlide(nil, nil),
		slide.NewSlide([]*slide.Object{text}, []slide.Build{
			slide.Single(slide.Animate(text, slide.Props{"opacity": 0}, slide.WithShortcut("fade"))),
		}, slide.Aliases("test1")),
		slide.NewSlide([]*slide.Object{box}, []slide.Build{
			slide.Single(slide.Update(box, slide.Props{"x": 1})),
			slide.Parallel(
				slide.Animate(box, slide.Props{"x": 2}, slide.WithShortcut("left")),
				slide.Animate(box, slide.Props{"y": 2}, slide.WithShortcut("right", "fade")),
			),
		}, slide.Aliases("hi")),
	)
}

func TestShortcuts(t *testing.T) {
	want := map[string]Target{
		"s":     {0, 0},
		"c":     {CurrentSlide, 0},
		"e":     {2, 2},
		"test1": {1, 0},
		"hi":    {2, 0},
		"left":  {2, 2},
		"right": {2, 2},
		// last registration wins
		"fade": {2, 2},
	}
	if diff := cmp.Diff(want, Shortcuts(samplePresentation())); diff != "" {
		t.Errorf("Shortcuts mismatch (-want +got):\n%s", diff)
	}
}

func TestShortcutsEmptyPresentation(t *testing.T) {
	got := Shortcuts(slide.NewPresentation(""))
	if got["e"] != (Target{}) {
		t.Errorf("Expected e to point at the start, got %+v", got["e"])
	}
}

// typeCommand feeds "g", the characters of s and Enter.
func typeCommand(n *Navigator, s string, at Target) Request {
	n.Handle(Event{Kind: EventCharacter, Char: 'g'}, at)
	for _, r := range s {
		n.Handle(Event{Kind: EventCharacter, Char: r}, at)
	}
	return n.Handle(Event{Kind: EventEnter}, at)
}

func TestJumpAndBack(t *testing.T) {
	n := New(samplePresentation())
	start := Target{SlideIndex: 0, BuildIndex: 0}

	req := typeCommand(n, "hi", start)
	if req.Action != ActionJump || req.Target != (Target{2, 0}) {
		t.Fatalf("Expected jump to slide 2, got %+v", req)
	}
	if _, composing := n.Command(); composing {
		t.Error("Enter should end the command")
	}

	req = typeCommand(n, "b", Target{2, 0})
	if req.Action != ActionJump || req.Target != start {
		t.Errorf("Expected jump back to %+v, got %+v", start, req)
	}
}

func TestCurrentSlideShortcut(t *testing.T) {
	n := New(samplePresentation())
	req := typeCommand(n, "c", Target{SlideIndex: 2, BuildIndex: 1})
	if req.Target != (Target{2, 0}) {
		t.Errorf("Expected start of slide 2, got %+v", req.Target)
	}
}

func TestNumericFallback(t *testing.T) {
	tests := []struct {
		command string
		want    Request
	}{
		{"2", Request{Action: ActionJump, Target: Target{1, 0}}},
		{"10", Request{Action: ActionJump, Target: Target{9, 0}}},
		{"0", Request{}},
		{"", Request{}},
		{"nope", Request{}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			n := New(samplePresentation())
			if got := typeCommand(n, tt.command, Target{}); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if cmd, composing := n.Command(); composing || cmd != "" {
				t.Errorf("Command buffer should be cleared, got %q", cmd)
			}
		})
	}
}

func TestUnresolvedCommandKeepsBack(t *testing.T) {
	n := New(samplePresentation())
	typeCommand(n, "hi", Target{1, 1})
	typeCommand(n, "nope", Target{2, 0})

	if got, _ := n.Lookup("b"); got != (Target{1, 1}) {
		t.Errorf("A failed lookup must not move the back reference, got %+v", got)
	}
}

func TestBackspaceAndEscape(t *testing.T) {
	n := New(samplePresentation())
	at := Target{}

	n.Handle(Event{Kind: EventCharacter, Char: 'g'}, at)
	n.Handle(Event{Kind: EventCharacter, Char: 'x'}, at)
	n.Handle(Event{Kind: EventCharacter, Char: 'y'}, at)
	n.Handle(Event{Kind: EventBackspace}, at)
	if cmd, _ := n.Command(); cmd != "x" {
		t.Errorf("Expected x, got %q", cmd)
	}

	n.Handle(Event{Kind: EventBackspace}, at)
	n.Handle(Event{Kind: EventBackspace}, at)
	if cmd, composing := n.Command(); !composing || cmd != "" {
		t.Errorf("Backspace on an empty command should keep composing, got %q %v", cmd, composing)
	}

	n.Handle(Event{Kind: EventCharacter, Char: 'h'}, at)
	n.Handle(Event{Kind: EventEscape}, at)
	if _, composing := n.Command(); composing {
		t.Error("Escape should discard the command")
	}
	if got := n.Handle(Event{Kind: EventEnter}, at); got != (Request{}) {
		t.Errorf("Enter while idle should do nothing, got %+v", got)
	}
}

func TestNextPreviousIgnoreCommand(t *testing.T) {
	n := New(samplePresentation())
	at := Target{}

	n.Handle(Event{Kind: EventCharacter, Char: 'g'}, at)
	n.Handle(Event{Kind: EventCharacter, Char: 'h'}, at)

	if got := n.Handle(Event{Kind: EventNext, Skip: true}, at); got != (Request{Action: ActionNext, Skip: true}) {
		t.Errorf("next: got %+v", got)
	}
	if got := n.Handle(Event{Kind: EventPrevious}, at); got != (Request{Action: ActionPrevious}) {
		t.Errorf("previous: got %+v", got)
	}
	if cmd, composing := n.Command(); !composing || cmd != "h" {
		t.Errorf("Command should survive navigation, got %q %v", cmd, composing)
	}
}

func TestShowNavigator(t *testing.T) {
	n := New(samplePresentation())
	want := Request{Action: ActionShowNavigator}

	if got := n.Handle(Event{Kind: EventCharacter, Char: '`'}, Target{}); got != want {
		t.Errorf("backtick: got %+v", got)
	}
	if got := n.Handle(Event{Kind: EventShowNavigator}, Target{}); got != want {
		t.Errorf("event: got %+v", got)
	}

	// while composing, a backtick is just another character
	n.Handle(Event{Kind: EventCharacter, Char: 'g'}, Target{})
	if got := n.Handle(Event{Kind: EventCharacter, Char: '`'}, Target{}); got != (Request{}) {
		t.Errorf("composing: got %+v", got)
	}
}

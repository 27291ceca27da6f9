package navigator

import "github.com/ivlev/deck2video/internal/slide"

// CurrentSlide as a Target slide index means "stay on the slide being shown".
const CurrentSlide = -1

// Reserved shortcut names.
const (
	ShortcutStart   = "s"
	ShortcutCurrent = "c"
	ShortcutEnd     = "e"
	ShortcutBack    = "b"
)

// Target is a position in a presentation.
type Target struct {
	SlideIndex int
	BuildIndex int
}

// Resolve replaces CurrentSlide with the slide of current.
func (t Target) Resolve(current Target) Target {
	if t.SlideIndex == CurrentSlide {
		t.SlideIndex = current.SlideIndex
	}
	return t
}

// Shortcuts builds the alias table of a presentation. Aliases are registered in
// slide order, then build order, then step order; a later alias replaces an
// earlier one with the same name.
func Shortcuts(p *slide.Presentation) map[string]Target {
	last := Target{}
	if n := len(p.Slides); n > 0 {
		last = Target{SlideIndex: n - 1, BuildIndex: p.Slides[n-1].BuildCount()}
	}

	table := map[string]Target{
		ShortcutStart:   {SlideIndex: 0, BuildIndex: 0},
		ShortcutCurrent: {SlideIndex: CurrentSlide, BuildIndex: 0},
		ShortcutEnd:     last,
	}

	for i, s := range p.Slides {
		if s == nil {
			continue
		}
		for _, alias := range s.Shortcut {
			table[alias] = Target{SlideIndex: i}
		}
		for b, build := range s.Builds {
			for _, alias := range build.Shortcuts() {
				table[alias] = Target{SlideIndex: i, BuildIndex: b + 1}
			}
		}
	}

	return table
}

package present

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ivlev/deck2video/internal/navigator"
)

// Input is the keyboard state of one frame.
type Input struct {
	Right, Left, Space bool
	Escape, Enter      bool
	Backspace          bool
	Shift              bool
	Chars              []rune
}

// ReadInput collects the keys pressed since the previous frame.
func ReadInput() Input {
	return Input{
		Right:     inpututil.IsKeyJustReleased(ebiten.KeyArrowRight),
		Left:      inpututil.IsKeyJustReleased(ebiten.KeyArrowLeft),
		Space:     inpututil.IsKeyJustReleased(ebiten.KeySpace),
		Escape:    inpututil.IsKeyJustReleased(ebiten.KeyEscape),
		Enter:     inpututil.IsKeyJustReleased(ebiten.KeyEnter) || inpututil.IsKeyJustReleased(ebiten.KeyNumpadEnter),
		Backspace: inpututil.IsKeyJustReleased(ebiten.KeyBackspace),
		Shift:     ebiten.IsKeyPressed(ebiten.KeyShift),
		Chars:     ebiten.AppendInputChars(nil),
	}
}

// Events translates a frame of input into navigator events. Space always means
// next, so it never reaches a text command.
func (in Input) Events() []navigator.Event {
	var events []navigator.Event
	if in.Escape {
		events = append(events, navigator.Event{Kind: navigator.EventEscape})
	}
	if in.Right || in.Space {
		events = append(events, navigator.Event{Kind: navigator.EventNext, Skip: in.Shift})
	}
	if in.Left {
		events = append(events, navigator.Event{Kind: navigator.EventPrevious, Skip: in.Shift})
	}
	for _, r := range in.Chars {
		if r == ' ' {
			continue
		}
		events = append(events, navigator.Event{Kind: navigator.EventCharacter, Char: r})
	}
	if in.Backspace {
		events = append(events, navigator.Event{Kind: navigator.EventBackspace})
	}
	if in.Enter {
		events = append(events, navigator.Event{Kind: navigator.EventEnter})
	}
	return events
}

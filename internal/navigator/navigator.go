package navigator

import (
	"strconv"

	"github.com/ivlev/deck2video/internal/slide"
)

// EventKind names a discrete input event.
type EventKind int

const (
	EventNext EventKind = iota + 1
	EventPrevious
	EventEscape
	EventCharacter
	EventBackspace
	EventEnter
	EventShowNavigator
)

// Event is one input event. Skip carries the skip-intermediate-builds modifier
// for next/previous; Char is set for EventCharacter.
type Event struct {
	Kind EventKind
	Char rune
	Skip bool
}

// Action is what the host should do in response to an event.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionJump
	ActionShowNavigator
)

// Request is the outcome of handling one event. Target is set for ActionJump and
// never holds CurrentSlide.
type Request struct {
	Action Action
	Target Target
	Skip   bool
}

// Navigator owns the shortcut table and the text command being typed. It is not
// safe for concurrent use; the host calls it from its input loop.
type Navigator struct {
	shortcuts map[string]Target
	composing bool
	command   []rune
}

// New creates a navigator with the shortcut table of p.
func New(p *slide.Presentation) *Navigator {
	return &Navigator{shortcuts: Shortcuts(p)}
}

// Command returns the text command being typed and whether one is in progress.
func (n *Navigator) Command() (string, bool) {
	return string(n.command), n.composing
}

// Lookup returns the target of a shortcut alias.
func (n *Navigator) Lookup(alias string) (Target, bool) {
	t, ok := n.shortcuts[alias]
	return t, ok
}

// Handle advances the input state machine. current is the position shown when
// the event arrived; it is recorded under "b" before any jump.
func (n *Navigator) Handle(ev Event, current Target) Request {
	switch ev.Kind {
	case EventEscape:
		n.reset()
		return Request{}
	case EventNext:
		return Request{Action: ActionNext, Skip: ev.Skip}
	case EventPrevious:
		return Request{Action: ActionPrevious, Skip: ev.Skip}
	}

	if n.composing {
		switch ev.Kind {
		case EventEnter:
			command := string(n.command)
			n.reset()
			target, ok := n.resolve(command)
			if !ok {
				return Request{}
			}
			n.shortcuts[ShortcutBack] = current
			return Request{Action: ActionJump, Target: target.Resolve(current)}
		case EventBackspace:
			if len(n.command) > 0 {
				n.command = n.command[:len(n.command)-1]
			}
		case EventCharacter:
			n.command = append(n.command, ev.Char)
		}
		return Request{}
	}

	switch {
	case ev.Kind == EventCharacter && ev.Char == 'g':
		n.composing = true
		n.command = n.command[:0]
	case ev.Kind == EventCharacter && ev.Char == '`', ev.Kind == EventShowNavigator:
		return Request{Action: ActionShowNavigator}
	}
	return Request{}
}

// resolve looks command up in the shortcut table and falls back to a 1-based
// slide number.
func (n *Navigator) resolve(command string) (Target, bool) {
	if t, ok := n.shortcuts[command]; ok {
		return t, true
	}
	if num, err := strconv.Atoi(command); err == nil && num >= 1 {
		return Target{SlideIndex: num - 1}, true
	}
	return Target{}, false
}

func (n *Navigator) reset() {
	n.composing = false
	n.command = nil
}

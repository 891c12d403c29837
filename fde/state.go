// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fde

import (
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/key"
)

// EventKind represents the source of a display event.
type EventKind int

const (
	// Keyboard events carry a key press.
	Keyboard EventKind = iota
	// Driver events signal a form refresh requested by the form owner.
	Driver
)

// Event represents a display event.
type Event struct {
	Kind  EventKind
	Input key.Input
}

// Press returns a Keyboard event.
func Press(in key.Input) Event {
	return Event{Kind: Keyboard, Input: in}
}

// State represents the navigation state of a displayed form.
type State struct {
	// Selected is the selected element index, None if nothing is
	// selectable.
	Selected int
	// Editing is set while the selected element value is edited.
	Editing bool
	// ElementStart is the index of the first visible element.
	ElementStart int

	// element state on edit entry, restored on discard
	saved Element
}

// Context represents the form properties which drive state transitions.
type Context struct {
	// FrontPage disables form exit.
	FrontPage bool
	// HotKeys are matched while not editing.
	HotKeys []HotKey
	// Window is the number of visible elements.
	Window int
}

// Step applies an event to the navigation state of a form, elements are
// updated in place. A non nil UserInput terminates the form display.
func Step(s State, elements []Element, ev Event, ctx Context) (State, *UserInput) {
	if ev.Kind == Driver {
		return s, &UserInput{Action: ActionNone}
	}

	if !s.Editing {
		for _, hk := range ctx.HotKeys {
			if hk != nil && hk.Key() == ev.Input {
				return s, &UserInput{
					Action:    hk.Action(),
					DefaultID: hk.DefaultID(),
				}
			}
		}
	}

	var e *Element

	if s.Selected >= 0 && s.Selected < len(elements) {
		e = &elements[s.Selected]
	}

	switch key.FromInput(ev.Input).Code {
	case key.Enter:
		if e == nil {
			break
		}

		return s.enter(e)
	case key.Escape:
		if s.Editing {
			s.discard(e)
			break
		}

		if !ctx.FrontPage {
			return s, &UserInput{Action: ActionFormExit}
		}
	case key.Down:
		switch {
		case s.Editing && e != nil:
			e.next(1)
		case e != nil:
			s.down(elements, ctx.Window)
		}
	case key.Up:
		switch {
		case s.Editing && e != nil:
			e.next(-1)
		case e != nil:
			s.up(elements, ctx.Window)
		}
	case key.PageDown:
		if s.Editing && e != nil && e.List && e.ListIndex+1 < len(e.Options) {
			e.Options[e.ListIndex], e.Options[e.ListIndex+1] = e.Options[e.ListIndex+1], e.Options[e.ListIndex]
			e.ListIndex++
		}
	case key.PageUp:
		if s.Editing && e != nil && e.List && e.ListIndex > 0 && e.ListIndex < len(e.Options) {
			e.ListIndex--
			e.Options[e.ListIndex], e.Options[e.ListIndex+1] = e.Options[e.ListIndex+1], e.Options[e.ListIndex]
		}
	}

	return s, nil
}

func (s State) enter(e *Element) (State, *UserInput) {
	if e.OpCode == ifr.OpCheckbox {
		b, ok := e.Value.Bool()

		if !ok {
			return s, nil
		}

		return s, &UserInput{
			Statement: e.Statement,
			Value:     ifr.Bool(!b),
		}
	}

	if e.Editable && !s.Editing {
		s.Editing = true
		s.saved = *e
		s.saved.Options = append([]Choice(nil), e.Options...)

		return s, nil
	}

	in := &UserInput{
		Statement: e.Statement,
		Value:     e.Statement.Value(),
	}

	if s.Editing {
		if e.List {
			if e.Buffer != nil {
				copy(e.Buffer, ifr.EncodeOrder(e.values(), len(e.Buffer)))
			}
		} else {
			in.Value = e.Value
		}

		s.Editing = false
	}

	return s, in
}

func (s *State) discard(e *Element) {
	s.Editing = false

	if e == nil {
		return
	}

	e.Value = s.saved.Value
	e.Options = s.saved.Options
	e.ListIndex = s.saved.ListIndex
	s.saved = Element{}
}

func (e *Element) values() (v []ifr.Value) {
	for _, o := range e.Options {
		v = append(v, o.Value)
	}

	return
}

// next moves the list cursor or the one-of selection by one position,
// circularly.
func (e *Element) next(dir int) {
	n := len(e.Options)

	if n == 0 {
		return
	}

	if e.List {
		e.ListIndex = (e.ListIndex + dir + n) % n
		return
	}

	if i, ok := e.Choice(); ok {
		e.Value = e.Options[(i+dir+n)%n].Value
	}
}

func (s *State) down(elements []Element, window int) {
	window = max(window, 1)
	start := s.Selected

	for {
		s.Selected = (s.Selected + 1) % len(elements)

		if elements[s.Selected].Selectable || s.Selected == start {
			break
		}
	}

	if s.Selected <= start {
		// wrapped
		s.ElementStart = 0
	}

	if s.Selected-s.ElementStart >= window {
		s.ElementStart = s.Selected - window + 1
	}
}

func (s *State) up(elements []Element, window int) {
	window = max(window, 1)
	start := s.Selected

	for {
		s.Selected = (s.Selected - 1 + len(elements)) % len(elements)

		if elements[s.Selected].Selectable || s.Selected == start {
			break
		}
	}

	switch {
	case s.Selected <= s.ElementStart:
		s.ElementStart = s.Selected
	case s.Selected >= start:
		// wrapped
		s.ElementStart = max(0, s.Selected-window+1)
	}
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fde

import (
	"strings"

	"github.com/system76/firmware-setup/ifr"
)

// None is the selection index when no element is selectable.
const None = -1

// Choice represents a resolved statement option.
type Choice struct {
	Value  ifr.Value
	Prompt string
}

// Element represents the displayed projection of a statement, it is rebuilt
// on every form entry.
type Element struct {
	Statement Statement
	OpCode    ifr.OpCode

	Prompt string
	Help   string

	// Value holds the value being edited.
	Value ifr.Value
	// Options holds the statement options, in display order.
	Options []Choice

	Selectable bool
	Editable   bool
	List       bool

	// ListIndex is the list cursor of ordered lists.
	ListIndex int
	// Buffer is the statement value buffer, ordered lists are committed
	// to it.
	Buffer []byte
}

// Choice returns the index of the option matching the element value.
func (e *Element) Choice() (i int, ok bool) {
	for i, o := range e.Options {
		if o.Value.Equal(e.Value) {
			return i, true
		}
	}

	return 0, false
}

func resolve(s Strings, handle uint64, id ifr.StringID) string {
	if s == nil {
		return ""
	}

	str, err := s.String(handle, id)

	if err != nil {
		return ""
	}

	return str
}

func choices(st Statement, s Strings, handle uint64) (c []Choice) {
	for _, opt := range st.Options() {
		if opt == nil {
			continue
		}

		raw := opt.OpCode()

		if raw == nil {
			continue
		}

		o, err := ifr.ParseOption(raw)

		if err != nil {
			continue
		}

		c = append(c, Choice{
			Value:  o.Value,
			Prompt: resolve(s, handle, o.Prompt),
		})
	}

	return
}

// Flatten returns the displayed elements of a form and the initially
// selected element index, which is the highlighted statement when
// selectable or otherwise the first selectable element (None if there is
// none).
//
// Unsupported opcodes, malformed opcodes and subtitles without prompt are
// not displayed, unresolved strings are displayed empty and malformed
// options are skipped.
func Flatten(form Form, s Strings) (elements []Element, selected int) {
	selected = None
	handle := form.Handle()
	highlight := form.Highlighted()

	for _, st := range form.Statements() {
		if st == nil {
			continue
		}

		op, err := ifr.ParseStatement(st.OpCode())

		if err != nil {
			continue
		}

		e := Element{
			Statement: st,
			OpCode:    op.OpCode,
		}

		switch op.OpCode {
		case ifr.OpAction, ifr.OpRef:
			e.Selectable = true
		case ifr.OpCheckbox, ifr.OpNumeric, ifr.OpOneOf:
			e.Selectable = true
			e.Editable = true
		case ifr.OpOrderedList:
			e.Selectable = true
			e.Editable = true
			e.List = true
		case ifr.OpSubtitle:
		default:
			continue
		}

		e.Prompt = resolve(s, handle, op.Prompt)
		e.Help = resolve(s, handle, op.Help)

		if op.OpCode == ifr.OpSubtitle && strings.TrimSpace(e.Prompt) == "" {
			continue
		}

		e.Value = st.Value()
		e.Options = choices(st, s, handle)
		e.Buffer = st.Buffer()

		if e.List && e.Buffer != nil {
			e.Options = matchOrder(e.Buffer, e.Options)
		}

		if e.Selectable && (selected == None || (highlight != nil && st == highlight)) {
			selected = len(elements)
		}

		elements = append(elements, e)
	}

	return
}

func matchOrder(buf []byte, options []Choice) (ordered []Choice) {
	values := make([]ifr.Value, len(options))

	for i, o := range options {
		values[i] = o.Value
	}

	for _, i := range ifr.MatchPermutation(buf, values) {
		ordered = append(ordered, options[i])
	}

	return
}

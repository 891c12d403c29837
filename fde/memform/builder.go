// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package memform

import (
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/key"
)

// Choice represents an option to build.
type Choice struct {
	Prompt string
	Value  ifr.Value
}

// Builder builds a Form and its string table.
type Builder struct {
	form     *Form
	strings  Strings
	id       ifr.StringID
	question uint16
}

// New returns a builder for a form with the argument identifier and title.
func New(id uint16, title string) *Builder {
	b := &Builder{
		strings: Strings{},
	}

	b.form = &Form{
		ID:      id,
		TitleID: b.str(title),
	}

	return b
}

// Form returns the built form.
func (b *Builder) Form() *Form {
	return b.form
}

// Strings returns the built string table.
func (b *Builder) Strings() Strings {
	return b.strings
}

func (b *Builder) str(s string) ifr.StringID {
	b.id++
	b.strings[b.id] = s

	return b.id
}

func (b *Builder) add(op ifr.Statement, value ifr.Value, options []Choice) *Statement {
	if op.OpCode.Question() {
		b.question++
		op.QuestionID = b.question
	}

	raw, err := op.MarshalBinary()

	if err != nil {
		panic(err)
	}

	st := &Statement{
		Raw:     raw,
		Current: value,
	}

	for _, c := range options {
		opt := ifr.Option{
			Prompt: b.str(c.Prompt),
			Value:  c.Value,
		}

		if raw, err = opt.MarshalBinary(); err != nil {
			panic(err)
		}

		st.Opts = append(st.Opts, &Option{Raw: raw})
	}

	b.form.Items = append(b.form.Items, st)

	return st
}

func (b *Builder) header(op ifr.OpCode, prompt string, help string) ifr.Statement {
	return ifr.Statement{
		OpCode: op,
		Prompt: b.str(prompt),
		Help:   b.str(help),
	}
}

// Subtitle adds a subtitle statement.
func (b *Builder) Subtitle(prompt string) *Statement {
	return b.add(b.header(ifr.OpSubtitle, prompt, ""), ifr.Value{}, nil)
}

// Text adds a text statement, which is not displayed.
func (b *Builder) Text(prompt string, help string) *Statement {
	return b.add(b.header(ifr.OpText, prompt, help), ifr.Value{}, nil)
}

// Action adds an action question.
func (b *Builder) Action(prompt string, help string) *Statement {
	return b.add(b.header(ifr.OpAction, prompt, help), ifr.Other(ifr.KindAction, nil), nil)
}

// Ref adds a cross reference to another form.
func (b *Builder) Ref(prompt string, help string, formID uint16) *Statement {
	op := b.header(ifr.OpRef, prompt, help)
	op.FormID = formID

	return b.add(op, ifr.Other(ifr.KindRef, nil), nil)
}

// Checkbox adds a checkbox question.
func (b *Builder) Checkbox(prompt string, help string, value bool) *Statement {
	return b.add(b.header(ifr.OpCheckbox, prompt, help), ifr.Bool(value), nil)
}

// Numeric adds a numeric question, the value width is taken from the value
// kind.
func (b *Builder) Numeric(prompt string, help string, value ifr.Value, min, max, step uint64) *Statement {
	op := b.header(ifr.OpNumeric, prompt, help)
	op.Flags = uint8(value.Kind()) & 0x03
	op.Minimum = min
	op.Maximum = max
	op.Step = step

	return b.add(op, value, nil)
}

// OneOf adds a one-of question.
func (b *Builder) OneOf(prompt string, help string, value ifr.Value, options ...Choice) *Statement {
	op := b.header(ifr.OpOneOf, prompt, help)
	op.Flags = uint8(value.Kind()) & 0x03

	return b.add(op, value, options)
}

// OrderedList adds an ordered list question with a buffer of size bytes,
// initialized with the options in order.
func (b *Builder) OrderedList(prompt string, help string, size int, options ...Choice) *Statement {
	op := b.header(ifr.OpOrderedList, prompt, help)
	op.MaxContainers = uint8(len(options))

	st := b.add(op, ifr.Other(ifr.KindBuffer, nil), options)

	var values []ifr.Value

	for _, c := range options {
		values = append(values, c.Value)
	}

	st.Buf = ifr.EncodeOrder(values, size)

	return st
}

// HotKey adds a form hot key.
func (b *Builder) HotKey(in key.Input, action uint32, defaultID uint16, help string) *HotKey {
	hk := &HotKey{
		Input:    in,
		Act:      action,
		Default:  defaultID,
		HelpText: help,
	}

	b.form.Keys = append(b.form.Keys, hk)

	return hk
}

// Highlight sets the form highlighted statement.
func (b *Builder) Highlight(st *Statement) {
	b.form.Highlight = st
}

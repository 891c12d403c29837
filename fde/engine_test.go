// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fde_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/system76/firmware-setup/fde"
	"github.com/system76/firmware-setup/fde/memform"
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/key"
	"github.com/system76/firmware-setup/ui"
	"github.com/system76/firmware-setup/ui/uitest"
)

var errExhausted = errors.New("script exhausted")

// batch represents the key presses queued before an event wakes the engine.
type batch struct {
	driver bool
	keys   []key.Input
}

// script implements fde.Events and key.Source.
type script struct {
	batches []batch
	queue   []key.Input
	waits   []uint64
	keyErr  error
}

func (s *script) Wait(refresh uint64) (fde.EventKind, error) {
	s.waits = append(s.waits, refresh)

	if len(s.batches) == 0 {
		return fde.Keyboard, errExhausted
	}

	b := s.batches[0]
	s.batches = s.batches[1:]

	if b.driver {
		return fde.Driver, nil
	}

	s.queue = append(s.queue, b.keys...)

	return fde.Keyboard, nil
}

func (s *script) ReadKey(wait bool) (in key.Input, err error) {
	if s.keyErr != nil {
		return in, s.keyErr
	}

	if len(s.queue) == 0 {
		return in, key.ErrNotReady
	}

	in = s.queue[0]
	s.queue = s.queue[1:]

	return
}

func engine(t *testing.T, s memform.Strings, sc *script, width int, height int) (*fde.Engine, *uitest.Canvas) {
	u, err := ui.Load(uitest.Font{})
	require.NoError(t, err)

	c := uitest.NewCanvas(width, height)

	return &fde.Engine{
		UI:      u,
		Canvas:  c,
		Keys:    sc,
		Events:  sc,
		Strings: s,
	}, c
}

func drawn(frame []uitest.Drawn, s string) (d uitest.Drawn, ok bool) {
	for _, d = range frame {
		if d.S == s {
			return d, true
		}
	}

	return uitest.Drawn{}, false
}

func TestDisplayForm(t *testing.T) {
	form, s := memform.Demo()
	sc := &script{
		batches: []batch{
			{keys: []key.Input{down, down, down}},
			{keys: []key.Input{enter}},
		},
	}

	e, c := engine(t, s, sc, 640, 480)

	in, err := e.DisplayForm(form)
	require.NoError(t, err)

	assert.Equal(t, form.Items[camera], in.Statement)
	assert.Equal(t, ifr.Bool(true), in.Value)
	assert.Len(t, c.Frames, 2, "queued keys are applied before the next frame")

	first := c.Frames[0]

	d, ok := drawn(first, "Boot Order")
	require.True(t, ok)
	assert.Equal(t, ui.HighlightText, d.Color)

	for _, s := range []string{"Firmware Setup Demo", "Esc=Exit", "Enter=Select Entry", "↑↓=Move Highlight", "F9=Reset to Defaults", "Move entries with PgUp and PgDn", "Ubuntu", "Balanced", "2"} {
		_, ok := drawn(first, s)
		assert.True(t, ok, "missing %q", s)
	}

	for _, s := range []string{"Firmware Version", "Quiet"} {
		_, ok := drawn(first, s)
		assert.False(t, ok, "unexpected %q", s)
	}

	d, ok = drawn(c.Last(), "Camera")
	require.True(t, ok)
	assert.Equal(t, ui.HighlightText, d.Color)

	d, ok = drawn(c.Last(), "Boot Order")
	require.True(t, ok)
	assert.Equal(t, ui.TextColor, d.Color)

	assert.True(t, c.Contains("Enable the camera"))
}

func TestDisplayFormEditHints(t *testing.T) {
	form, s := memform.Demo()
	form.Refresh = 0x1234

	sc := &script{
		batches: []batch{
			{keys: []key.Input{enter}},
			{driver: true},
		},
	}

	e, c := engine(t, s, sc, 640, 480)

	in, err := e.DisplayForm(form)
	require.NoError(t, err)

	assert.Equal(t, uint32(fde.ActionNone), in.Action)
	assert.Equal(t, []uint64{0x1234, 0x1234}, sc.waits)
	require.Len(t, c.Frames, 2)

	for _, s := range []string{"Esc=Discard Changes", "Enter=Save Changes", "PgDn=Move Selection Down", "PgUp=Move Selection Up"} {
		_, ok := drawn(c.Last(), s)
		assert.True(t, ok, "missing %q", s)
	}

	for _, s := range []string{"Esc=Exit", "F9=Reset to Defaults"} {
		_, ok := drawn(c.Last(), s)
		assert.False(t, ok, "unexpected %q", s)
	}

	d, ok := drawn(c.Last(), "Ubuntu")
	require.True(t, ok)
	assert.Equal(t, ui.HighlightText, d.Color, "list cursor")
}

func TestDisplayFormFrontPage(t *testing.T) {
	form, s := memform.Demo()
	form.ID = fde.FrontPageFormID

	sc := &script{
		batches: []batch{
			{keys: []key.Input{escape}},
			{driver: true},
		},
	}

	e, c := engine(t, s, sc, 640, 480)

	in, err := e.DisplayForm(form)
	require.NoError(t, err)
	assert.Equal(t, uint32(fde.ActionNone), in.Action)

	for _, frame := range c.Frames {
		_, ok := drawn(frame, "Esc=Exit")
		assert.False(t, ok)
	}
}

func TestDisplayFormHighlight(t *testing.T) {
	b := memform.New(0x3, "Items")

	var last *memform.Statement

	for i := 0; i < 20; i++ {
		last = b.Checkbox(fmt.Sprintf("Item %d", i), "", false)
	}

	b.Highlight(last)

	sc := &script{}
	e, c := engine(t, b.Strings(), sc, 640, 200)

	_, err := e.DisplayForm(b.Form())
	assert.ErrorIs(t, err, errExhausted)
	require.Len(t, c.Frames, 1)

	frame := c.Last()

	for _, s := range []string{"Item 13", "Item 19", "↑"} {
		_, ok := drawn(frame, s)
		assert.True(t, ok, "missing %q", s)
	}

	for _, s := range []string{"Item 12", "Item 0", "↓"} {
		_, ok := drawn(frame, s)
		assert.False(t, ok, "unexpected %q", s)
	}

	d, ok := drawn(frame, "Item 19")
	require.True(t, ok)
	assert.Equal(t, ui.HighlightText, d.Color)
}

func TestRenderWindow(t *testing.T) {
	form, s := memform.Demo()

	u, err := ui.Load(uitest.Font{})
	require.NoError(t, err)

	sc := &fde.Screen{}
	sc.Elements, sc.State.Selected = fde.Flatten(form, s)

	// one row of hints and no help
	sc.Elements[sc.State.Selected].Help = ""

	window := fde.Render(u, uitest.NewCanvas(640, 200), sc)
	assert.Equal(t, (200-(12+4)-6-(4+8))/(16+4), window)
	assert.Equal(t, 0, sc.State.ElementStart)
}

func TestDisplayFormErrors(t *testing.T) {
	form, s := memform.Demo()

	_, err := (&fde.Engine{}).DisplayForm(form)
	assert.ErrorIs(t, err, fde.ErrNoResources)

	keyErr := errors.New("device error")
	sc := &script{
		batches: []batch{{keys: []key.Input{down}}},
		keyErr:  keyErr,
	}

	e, _ := engine(t, s, sc, 640, 480)

	_, err = e.DisplayForm(form)
	assert.ErrorIs(t, err, keyErr)

	e, _ = engine(t, s, &script{}, 640, 480)

	_, err = e.DisplayForm(form)
	assert.ErrorIs(t, err, errExhausted)
}

func TestConfirmDataChange(t *testing.T) {
	e := &fde.Engine{}
	e.ExitDisplay()

	assert.Zero(t, e.ConfirmDataChange())
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/system76/firmware-setup/ec"
	"github.com/system76/firmware-setup/key"
	"github.com/system76/firmware-setup/ui"
	"github.com/system76/firmware-setup/ui/uitest"
)

var (
	errExhausted = errors.New("script exhausted")

	enter  = key.Input{UnicodeChar: 0x0d}
	bs     = key.Input{UnicodeChar: 0x08}
	up     = key.Input{ScanCode: 0x01}
	down   = key.Input{ScanCode: 0x02}
	escape = key.Input{ScanCode: 0x17}
)

type fixed []byte

func (f fixed) Read(b []byte) error {
	if f == nil {
		return errors.New("device error")
	}

	copy(b, f)

	return nil
}

// console returns stale keys on non-blocking reads and script keys on
// blocking ones.
type console struct {
	stale  []key.Input
	script []key.Input
}

func (c *console) ReadKey(wait bool) (in key.Input, err error) {
	if !wait {
		if len(c.stale) == 0 {
			return in, key.ErrNotReady
		}

		in, c.stale = c.stale[0], c.stale[1:]

		return
	}

	if len(c.script) == 0 {
		return in, errExhausted
	}

	in, c.script = c.script[0], c.script[1:]

	return
}

func typed(s string) (keys []key.Input) {
	for _, r := range s {
		keys = append(keys, key.Input{UnicodeChar: uint16(r)})
	}

	return
}

func script(parts ...[]key.Input) (keys []key.Input) {
	for _, p := range parts {
		keys = append(keys, p...)
	}

	return
}

type fakeEC struct {
	state  ec.SecurityState
	getErr error
	sets   []ec.SecurityState
}

func (f *fakeEC) SecurityGet() (ec.SecurityState, error) {
	return f.state, f.getErr
}

func (f *fakeEC) SecuritySet(state ec.SecurityState) error {
	f.sets = append(f.sets, state)
	return nil
}

type platform struct {
	shutdowns int
}

func (p *platform) Shutdown() {
	p.shutdowns++
}

func newPrompt(t *testing.T, rng Random, keys *console) (*Prompt, *uitest.Canvas) {
	u, err := ui.Load(uitest.Font{})
	require.NoError(t, err)

	c := uitest.NewCanvas(640, 480)

	return &Prompt{
		UI:     u,
		Canvas: c,
		Keys:   keys,
		RNG:    rng,
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

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(fixed{12, 199, 7, 100})
	require.NoError(t, err)
	assert.Equal(t, "12990700", code)

	_, err = GenerateCode(fixed(nil))
	assert.ErrorIs(t, err, ErrNoEntropy)

	_, err = GenerateCode(nil)
	assert.ErrorIs(t, err, ErrNoEntropy)
}

func TestChallenge(t *testing.T) {
	press := func(c *Challenge, keys ...key.Input) (o Outcome) {
		for _, k := range keys {
			o = c.Handle(key.FromInput(k))
		}

		return
	}

	c := &Challenge{Code: "1234"}

	assert.Equal(t, Pending, press(c, typed("12a34")...))
	assert.Equal(t, "1234", c.Input, "non digits are ignored")

	press(c, typed("5")...)
	assert.Equal(t, "1234", c.Input, "input is bounded to the code length")
	assert.True(t, c.Full())

	press(c, bs, bs)
	assert.Equal(t, "12", c.Input)

	press(c, escape)
	assert.Empty(t, c.Input)

	press(c, bs)
	assert.Empty(t, c.Input)

	assert.Equal(t, Pending, press(c, script(typed("4321"), []key.Input{enter})...))
	assert.Empty(t, c.Input, "mismatches clear the input")

	assert.Equal(t, Confirmed, press(c, script(typed("1234"), []key.Input{enter})...))

	c = &Challenge{Code: "1234"}

	press(c, down, down)
	assert.Equal(t, ButtonCancel, c.Button, "down saturates")

	press(c, up, up)
	assert.Equal(t, ButtonConfirm, c.Button, "up saturates")

	assert.Equal(t, Cancelled, press(c, script(typed("1234"), []key.Input{down, enter})...))
}

func TestConfirm(t *testing.T) {
	keys := &console{
		stale:  typed("9"),
		script: script(typed("12345670"), []key.Input{enter}, typed("12345678"), []key.Input{enter}),
	}

	p, c := newPrompt(t, fixed{12, 34, 56, 78}, keys)

	require.NoError(t, p.Confirm())
	assert.Empty(t, keys.stale, "stale keys are discarded")
	assert.Len(t, c.Frames, 18, "one frame per key press")

	first := c.Frames[0]

	for _, s := range []string{"Firmware Update", "12345678", "Confirm", "Cancel"} {
		_, ok := drawn(first, s)
		assert.True(t, ok, "missing %q", s)
	}

	d, ok := drawn(first, "Confirm")
	require.True(t, ok)
	assert.Equal(t, ui.HighlightText, d.Color)

	d, ok = drawn(first, "Cancel")
	require.True(t, ok)
	assert.Equal(t, ui.TextColor, d.Color)

	_, ok = drawn(c.Frames[8], "12345670")
	assert.True(t, ok, "typed input")

	_, ok = drawn(c.Frames[9], "12345670")
	assert.False(t, ok, "mismatched input is cleared")
}

func TestConfirmLayout(t *testing.T) {
	p, c := newPrompt(t, fixed{1, 2, 3, 4}, &console{})

	assert.ErrorIs(t, p.Confirm(), errExhausted)
	require.Len(t, c.Frames, 1)

	st := NewStyle(640, 480)
	assert.Equal(t, 616, st.FormWidth)
	assert.Equal(t, 12, st.FormX)

	d, ok := drawn(c.Last(), "Firmware Update")
	require.True(t, ok)
	assert.Equal(t, (640-len("Firmware Update")*uitest.GlyphWidth)/2, d.X)
	assert.Equal(t, 4, d.Y)

	d, ok = drawn(c.Last(), "01020304")
	require.True(t, ok)
	assert.Equal(t, st.FormX, d.X)

	for _, d := range c.Last() {
		assert.LessOrEqual(t, len(d.S)*uitest.GlyphWidth, 640-st.FormX, "%q is wrapped", d.S)
	}

	// cursor block after the empty input
	assert.Equal(t, ui.TextColor, c.Pixel(st.FormX+1, d.Y+10+4+1))
}

func TestConfirmCancel(t *testing.T) {
	keys := &console{script: []key.Input{down, enter}}
	p, c := newPrompt(t, fixed{1, 2, 3, 4}, keys)

	assert.ErrorIs(t, p.Confirm(), ErrAborted)

	d, ok := drawn(c.Last(), "Cancel")
	require.True(t, ok)
	assert.Equal(t, ui.HighlightText, d.Color)
}

func TestConfirmNoEntropy(t *testing.T) {
	p, c := newPrompt(t, fixed(nil), &console{script: []key.Input{enter}})

	assert.ErrorIs(t, p.Confirm(), ErrNoEntropy)
	assert.Empty(t, c.Frames, "nothing is shown without a code")
	assert.Empty(t, c.Texts)

	assert.ErrorIs(t, (&Prompt{}).Confirm(), ErrNoResources)
}

func TestRun(t *testing.T) {
	for _, tt := range []struct {
		name      string
		state     ec.SecurityState
		getErr    error
		prompt    bool
		rng       Random
		keys      []key.Input
		ran       bool
		shutdowns int
	}{
		{name: "locked", state: ec.Lock, prompt: true, rng: fixed{1, 2, 3, 4}},
		{name: "EC error", state: ec.Unlock, getErr: errors.New("timeout"), prompt: true, rng: fixed{1, 2, 3, 4}},
		{name: "confirmed", state: ec.Unlock, prompt: true, rng: fixed{1, 2, 3, 4}, keys: script(typed("01020304"), []key.Input{enter}), ran: true},
		{name: "prepare unlock", state: ec.PrepareUnlock, prompt: true, rng: fixed{1, 2, 3, 4}, keys: script(typed("01020304"), []key.Input{enter}), ran: true},
		{name: "cancelled", state: ec.Unlock, prompt: true, rng: fixed{1, 2, 3, 4}, keys: []key.Input{down, enter}, ran: true, shutdowns: 1},
		{name: "abandoned", state: ec.Unlock, prompt: true, rng: fixed{1, 2, 3, 4}, keys: typed("0102"), ran: true, shutdowns: 1},
		{name: "no entropy", state: ec.Unlock, prompt: true, rng: fixed(nil), ran: true, shutdowns: 1},
		{name: "no display", state: ec.Unlock, ran: true, shutdowns: 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEC{state: tt.state, getErr: tt.getErr}
			pl := &platform{}

			var p *Prompt
			var c *uitest.Canvas

			if tt.prompt {
				p, c = newPrompt(t, tt.rng, &console{script: tt.keys})
			}

			assert.Equal(t, tt.ran, Run(e, p, pl))
			assert.Equal(t, tt.shutdowns, pl.shutdowns)

			if tt.shutdowns > 0 {
				assert.Equal(t, []ec.SecurityState{ec.PrepareLock}, e.sets)
			} else {
				assert.Empty(t, e.sets)
			}

			if c == nil {
				return
			}

			if !tt.ran {
				assert.Empty(t, c.Frames, "no prompt")
				return
			}

			assert.Equal(t, ui.Black, c.Pixel(0, 0), "display cleared")
		})
	}
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package key

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queue struct {
	keys []Input
	err  error
}

func (q *queue) ReadKey(wait bool) (in Input, err error) {
	if len(q.keys) == 0 {
		if q.err != nil {
			return in, q.err
		}

		return in, ErrNotReady
	}

	in, q.keys = q.keys[0], q.keys[1:]

	return
}

func TestFromInput(t *testing.T) {
	for _, tt := range []struct {
		in   Input
		want Key
	}{
		{Input{0, 0x08}, Key{Code: Backspace}},
		{Input{0, 0x09}, Key{Code: Tab}},
		{Input{0, 0x0d}, Key{Code: Enter}},
		{Input{0, '7'}, Char('7')},
		{Input{0, 'é'}, Char('é')},
		{Input{0x01, 0}, Key{Code: Up}},
		{Input{0x02, 0}, Key{Code: Down}},
		{Input{0x03, 0}, Key{Code: Right}},
		{Input{0x04, 0}, Key{Code: Left}},
		{Input{0x05, 0}, Key{Code: Home}},
		{Input{0x06, 0}, Key{Code: End}},
		{Input{0x07, 0}, Key{Code: Insert}},
		{Input{0x08, 0}, Key{Code: Delete}},
		{Input{0x09, 0}, Key{Code: PageUp}},
		{Input{0x0a, 0}, Key{Code: PageDown}},
		{Input{0x0b, 0}, Key{Code: F1}},
		{Input{0x16, 0}, Key{Code: F12}},
		{Input{0x17, 0}, Key{Code: Escape}},
		{Input{0x18, 0}, Key{Code: Scancode, ScanCode: 0x18}},
		{Input{0x100, 'x'}, Key{Code: Scancode, ScanCode: 0x100}},
	} {
		assert.Equal(t, tt.want, FromInput(tt.in), "%+v", tt.in)
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Escape", Key{Code: Escape}.String())
	assert.Equal(t, `Character('a')`, Char('a').String())
	assert.Equal(t, "Scancode(0x42)", Key{Code: Scancode, ScanCode: 0x42}.String())
	assert.Equal(t, "Code(99)", Code(99).String())
}

func TestRead(t *testing.T) {
	q := &queue{keys: []Input{{0x17, 0}}}

	k, err := Read(q, false)
	require.NoError(t, err)
	assert.Equal(t, Escape, k.Code)

	_, err = Read(q, false)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestDrain(t *testing.T) {
	q := &queue{keys: []Input{{0, '1'}, {0, '2'}, {0x01, 0}}}

	n, err := Drain(q)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, q.keys)

	n, err = Drain(q)
	require.NoError(t, err)
	assert.Zero(t, n)

	failure := errors.New("device error")
	q = &queue{keys: []Input{{0, '1'}}, err: failure}

	n, err = Drain(q)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 1, n)
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ifr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, U8(1).Equal(U8(1)))
	assert.False(t, U8(1).Equal(U16(1)), "different variants must not compare equal")
	assert.False(t, U32(1).Equal(U32(2)))
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(U8(1)))
	assert.True(t, Other(KindDate, []byte{1, 2}).Equal(Other(KindDate, []byte{1, 2})))
	assert.False(t, Other(KindDate, []byte{1, 2}).Equal(Other(KindTime, []byte{1, 2})))
}

func TestDecodeValue(t *testing.T) {
	raw := []byte{0x34, 0x12, 0x78, 0x56, 0xbc, 0x9a, 0xf0, 0xde}

	assert.Equal(t, U8(0x34), DecodeValue(KindU8, raw))
	assert.Equal(t, U16(0x1234), DecodeValue(KindU16, raw))
	assert.Equal(t, U32(0x56781234), DecodeValue(KindU32, raw))
	assert.Equal(t, U64(0xdef09abc56781234), DecodeValue(KindU64, raw))
	assert.Equal(t, Bool(true), DecodeValue(KindBool, raw))
	assert.Equal(t, Bool(false), DecodeValue(KindBool, []byte{0}))

	v := DecodeValue(KindString, []byte{0x05, 0x00})
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, []byte{0x05, 0x00}, v.Bytes())
	assert.Equal(t, 0, v.Width())
}

func TestValueUnion(t *testing.T) {
	kind, u := U16(0xbeef).Union()

	assert.Equal(t, KindU16, kind)
	assert.Equal(t, []byte{0xef, 0xbe, 0, 0}, u[:4])
	assert.Equal(t, U16(0xbeef), DecodeValue(kind, u[:]))

	kind, u = Bool(true).Union()
	assert.Equal(t, KindBool, kind)
	assert.Equal(t, uint8(1), u[0])
}

func TestEncodeOrder(t *testing.T) {
	buf := EncodeOrder([]Value{U16(3), U16(1), U16(2)}, 8)
	assert.Equal(t, []byte{3, 0, 1, 0, 2, 0, 0, 0}, buf)

	buf = EncodeOrder([]Value{U8(1), Bool(true), U8(2)}, 4)
	assert.Equal(t, []byte{1, 2, 0, 0}, buf, "non numeric values are skipped")

	buf = EncodeOrder([]Value{U32(1), U32(2)}, 6)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0}, buf, "values past the end are dropped")
}

func TestMatchOrder(t *testing.T) {
	a, b, c := U16(0x10), U16(0x20), U16(0x30)

	got := MatchOrder([]byte{0x30, 0, 0x10, 0, 0x20, 0}, []Value{a, b, c})
	assert.Equal(t, []Value{c, a, b}, got)

	got = MatchOrder(nil, []Value{a, b, c})
	assert.Equal(t, []Value{a, b, c}, got, "empty buffer keeps the candidate order")

	got = MatchOrder([]byte{0xff, 0xff, 0xff, 0xff}, []Value{a, b, c})
	assert.Equal(t, []Value{a, b, c}, got, "unrelated buffer keeps the candidate order")

	// a is missing from the buffer and ends up last
	got = MatchOrder([]byte{0x20, 0, 0x30, 0}, []Value{a, b, c})
	assert.Equal(t, []Value{b, c, a}, got)
}

func TestOrderRoundTrip(t *testing.T) {
	a, b, c := U32(7), U32(8), U32(9)

	buf := EncodeOrder([]Value{c, a, b}, 16)
	require.Len(t, buf, 16)
	assert.Equal(t, make([]byte, 4), buf[12:])

	assert.Equal(t, []Value{c, a, b}, MatchOrder(buf, []Value{a, b, c}))
}

func TestParseStatementCheckbox(t *testing.T) {
	raw := []byte{0x06, 0x0e, 0x10, 0x00, 0x11, 0x00, 0x01, 0x00, 0x02, 0x00, 0x04, 0x00, 0x00, 0x01}

	s, err := ParseStatement(raw)
	require.NoError(t, err)

	assert.Equal(t, OpCheckbox, s.OpCode)
	assert.False(t, s.Scope)
	assert.Equal(t, StringID(0x10), s.Prompt)
	assert.Equal(t, StringID(0x11), s.Help)
	assert.Equal(t, uint16(1), s.QuestionID)
	assert.Equal(t, uint16(2), s.VarStoreID)
	assert.Equal(t, uint16(4), s.VarStoreInfo)
	assert.Equal(t, uint8(1), s.Flags)
}

func TestParseStatementOneOf(t *testing.T) {
	raw := []byte{
		0x05, 0x94,
		0x20, 0x00, 0x21, 0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		0x01,
		0x00, 0x00, 0x0a, 0x00, 0x01, 0x00,
	}

	s, err := ParseStatement(raw)
	require.NoError(t, err)

	assert.Equal(t, OpOneOf, s.OpCode)
	assert.True(t, s.Scope)
	assert.Equal(t, uint64(0), s.Minimum)
	assert.Equal(t, uint64(10), s.Maximum)
	assert.Equal(t, uint64(1), s.Step)

	built, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, raw, built)
}

func TestParseStatementSubtitle(t *testing.T) {
	s, err := ParseStatement([]byte{0x02, 0x87, 0x05, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, err)

	assert.Equal(t, OpSubtitle, s.OpCode)
	assert.Equal(t, StringID(5), s.Prompt)
	assert.False(t, s.OpCode.Question())
}

func TestParseStatementShort(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		{0x06},
		{0x06, 0x0e, 0x10},
		{0x06, 0x05, 0x10, 0x00, 0x11},
		{0x07, 0x0e, 0x10, 0x00, 0x11, 0x00, 0x01, 0x00, 0x02, 0x00, 0x04, 0x00, 0x00, 0x01},
	} {
		_, err := ParseStatement(raw)
		assert.ErrorIs(t, err, ErrShortOpCode, "%x", raw)
	}
}

func TestParseOption(t *testing.T) {
	o, err := ParseOption([]byte{0x09, 0x08, 0x20, 0x00, 0x00, 0x01, 0x07, 0x00})
	require.NoError(t, err)

	assert.Equal(t, StringID(0x20), o.Prompt)
	assert.Equal(t, U16(7), o.Value)

	_, err = ParseOption([]byte{0x09, 0x07, 0x20, 0x00, 0x00, 0x01, 0x07})
	assert.ErrorIs(t, err, ErrShortOpCode)

	_, err = ParseOption([]byte{0x06, 0x08, 0x20, 0x00, 0x00, 0x01, 0x07, 0x00})
	assert.Error(t, err)
}

func TestOptionMarshal(t *testing.T) {
	raw, err := Option{Prompt: 3, Value: U64(1 << 40)}.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, raw, 2+4+8)

	o, err := ParseOption(raw)
	require.NoError(t, err)
	assert.True(t, o.Value.Equal(U64(1<<40)))
}

func TestMatchPermutation(t *testing.T) {
	perm := MatchPermutation([]byte{3, 1}, []Value{U8(1), U8(2), U8(3)})
	assert.Equal(t, []int{2, 0, 1}, perm)

	assert.Empty(t, MatchPermutation(nil, nil))
	assert.Nil(t, MatchOrder(nil, nil))
}

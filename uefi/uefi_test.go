// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGUID(t *testing.T) {
	s := "9bbe29e9-fda1-41ec-ad52-452213742d2e"

	g, err := ParseGUID(s)
	require.NoError(t, err)

	assert.Equal(t, []byte{0xe9, 0x29, 0xbe, 0x9b, 0xa1, 0xfd, 0xec, 0x41}, g.Bytes()[:8])
	assert.Equal(t, []byte{0xad, 0x52, 0x45, 0x22, 0x13, 0x74, 0x2d, 0x2e}, g.Bytes()[8:])
	assert.Equal(t, s, g.String())

	_, err = ParseGUID("9bbe29e9-fda1-41ec-ad52")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParseGUID("invalid") })
}

func TestParseStatus(t *testing.T) {
	assert.NoError(t, parseStatus(EFI_SUCCESS))
	assert.NoError(t, parseStatus(4), "warnings are not errors")

	err := parseStatus(EFI_NOT_READY)
	assert.ErrorIs(t, err, ErrNotReady)

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, uint64(EFI_NOT_READY), serr.Status)
	assert.Equal(t, "EFI_STATUS error 0x8000000000000006 (6)", err.Error())

	assert.ErrorIs(t, parseStatus(EFI_BUFFER_TOO_SMALL), ErrBufferTooSmall)
	assert.ErrorIs(t, parseStatus(EFI_NOT_FOUND), ErrNotFound)
	assert.NotErrorIs(t, parseStatus(EFI_DEVICE_ERROR), ErrNotReady)
}

func TestDecodeString(t *testing.T) {
	assert.Equal(t, "Boot Order", DecodeString([]byte("B\x00o\x00o\x00t\x00 \x00O\x00r\x00d\x00e\x00r\x00\x00\x00x\x00")))
	assert.Equal(t, "↑", DecodeString([]byte{0x91, 0x21}))
	assert.Empty(t, DecodeString(nil))
	assert.Equal(t, "a", DecodeString([]byte{'a', 0, 'b'}), "odd trailing bytes are ignored")
}

func TestLayout(t *testing.T) {
	for _, tt := range []struct {
		name string
		data any
		size int
	}{
		{"EFI_HII_VALUE", &hiiValue{}, 48},
		{"FORM_DISPLAY_ENGINE_FORM", &formData{}, 144},
		{"FORM_DISPLAY_ENGINE_STATEMENT", &statementData{}, 160},
		{"DISPLAY_QUESTION_OPTION", &optionData{}, 32},
		{"BROWSER_HOT_KEY", &hotKeyData{}, 48},
		{"USER_INPUT", &userInput{}, 64},
	} {
		assert.Equal(t, tt.size, binary.Size(tt.data), tt.name)
	}
}

func TestLayoutOffsets(t *testing.T) {
	const marker = 0x1122334455667788

	head := listEntry{Flink: marker}

	buf, err := marshalBinary(&formData{StatementListHead: head, HotKeyListHead: head, FormRefreshEvent: marker})
	require.NoError(t, err)
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[statementListOffset:]))
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[hotKeyListOffset:]))
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[104:]))

	buf, err = marshalBinary(&statementData{
		DisplayLink:    head,
		OptionListHead: head,
		CurrentValue:   hiiValue{Type: 4, BufferLen: 0x1234, Value: [24]byte{0xaa}},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[displayLinkOffset:]))
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[optionListOffset:]))
	assert.Equal(t, byte(4), buf[40], "CurrentValue.Type")
	assert.Equal(t, uint16(0x1234), binary.LittleEndian.Uint16(buf[56:]), "CurrentValue.BufferLen")
	assert.Equal(t, byte(0xaa), buf[64], "CurrentValue.Value")

	buf, err = marshalBinary(&optionData{Link: head})
	require.NoError(t, err)
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[optionLinkOffset:]))

	buf, err = marshalBinary(&hotKeyData{Link: head, Action: 0x10000, HelpString: marker})
	require.NoError(t, err)
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[hotKeyLinkOffset:]))
	assert.Equal(t, uint32(0x10000), binary.LittleEndian.Uint32(buf[32:]))
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[40:]))

	buf, err = marshalBinary(&userInput{SelectedStatement: marker, Action: 0x20000, DefaultID: 7})
	require.NoError(t, err)
	assert.Equal(t, uint64(marker), binary.LittleEndian.Uint64(buf[0:]))
	assert.Equal(t, uint32(0x20000), binary.LittleEndian.Uint32(buf[56:]))
	assert.Equal(t, uint16(7), binary.LittleEndian.Uint16(buf[60:]))
}

func TestInputKey(t *testing.T) {
	in := InputKey{ScanCode: 0x17, UnicodeChar: 0x0d}.Input()

	assert.Equal(t, uint16(0x17), in.ScanCode)
	assert.Equal(t, uint16(0x0d), in.UnicodeChar)
}

// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"io"
	"unicode/utf16"

	"github.com/system76/firmware-setup/key"
)

const (
	// EFI ConOut offsets
	outputString = 0x08
	clearScreen  = 0x30
	enableCursor = 0x40

	// EFI ConIn offsets
	readKeyStroke = 0x08
	waitForKey    = 0x10
)

// InputKey represents an EFI Input Key descriptor.
type InputKey struct {
	ScanCode    uint16
	UnicodeChar uint16
}

// Input converts the descriptor to a raw key.
func (k InputKey) Input() key.Input {
	return key.Input{
		ScanCode:    k.ScanCode,
		UnicodeChar: k.UnicodeChar,
	}
}

// Console implements the [io.ReadWriter] interface over EFI Simple Text
// Input/Output protocol, as well as the [key.Source] interface.
type Console struct {
	io.ReadWriter

	// ForceLine controls whether line feeds (LF) should be supplemented
	// with a carriage return (CR).
	ForceLine bool

	// ReplaceTabs controls whether Console I/O output should have Tab
	// characters replaced with a number of spaces.
	ReplaceTabs int

	// EFI_SIMPLE_TEXT_INPUT_PROTOCOL and EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL
	// instances
	In  uint64
	Out uint64

	// Boot services for blocking reads
	Boot *BootServices
}

// Input calls EFI_SIMPLE_TEXT_INPUT_PROTOCOL.ReadKeyStroke().
func (c *Console) Input(k *InputKey) (status uint64) {
	if c.In == 0 {
		return EFI_NOT_READY
	}

	return callService(c.In+readKeyStroke,
		[]uint64{
			c.In,
			ptrval(k),
		},
	)
}

// Output calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.OutputString().
func (c *Console) Output(p []byte) (status uint64) {
	if len(p) == 0 || c.Out == 0 {
		return
	}

	if p[len(p)-1] != 0x00 {
		p = append(p, 0x00, 0x00)
	}

	return callService(c.Out+outputString,
		[]uint64{
			c.Out,
			ptrval(&p[0]),
		},
	)
}

// ClearScreen calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.ClearScreen().
func (c *Console) ClearScreen() (err error) {
	if c.Out == 0 {
		return
	}

	status := callService(c.Out+clearScreen,
		[]uint64{
			c.Out,
		},
	)

	return parseStatus(status)
}

// EnableCursor calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.EnableCursor().
func (c *Console) EnableCursor(visible bool) (err error) {
	var v uint64

	if c.Out == 0 {
		return
	}

	if visible {
		v = 1
	}

	status := callService(c.Out+enableCursor,
		[]uint64{
			c.Out,
			v,
		},
	)

	return parseStatus(status)
}

// WaitForKey returns the EFI_SIMPLE_TEXT_INPUT_PROTOCOL.WaitForKey event.
func (c *Console) WaitForKey() (event uint64, err error) {
	var e struct {
		Reset         uint64
		ReadKeyStroke uint64
		WaitForKey    uint64
	}

	if err = decode(&e, c.In); err != nil {
		return
	}

	return e.WaitForKey, nil
}

// ReadKey implements the [key.Source] interface.
func (c *Console) ReadKey(wait bool) (in key.Input, err error) {
	k := &InputKey{}

	for {
		err = parseStatus(c.Input(k))

		if !errors.Is(err, ErrNotReady) || !wait {
			break
		}

		event, err := c.WaitForKey()

		if err != nil {
			return in, err
		}

		if _, err = c.Boot.WaitForEvent(event); err != nil {
			return in, err
		}
	}

	switch {
	case errors.Is(err, ErrNotReady):
		return in, key.ErrNotReady
	case err != nil:
		return
	}

	return k.Input(), nil
}

// Read available data to buffer from console.
func (c *Console) Read(p []byte) (n int, err error) {
	k := &InputKey{}

	for n = 0; n+1 < len(p); n += 2 {
		status := c.Input(k)

		switch {
		case status == EFI_SUCCESS:
			p[n] = byte(k.UnicodeChar)
			p[n+1] = byte(k.UnicodeChar >> 8)
		case status == EFI_NOT_READY:
			return
		default:
			return n, parseStatus(status)
		}
	}

	return
}

// Write data from buffer to console.
func (c *Console) Write(p []byte) (n int, err error) {
	var s []byte

	if len(p) == 0 {
		return
	}

	b := utf16.Encode([]rune(string(p)))

	// We receive an UTF-8 string but we can output only UTF-16 ones.

	for _, r := range b {
		if r == 0x09 && c.ReplaceTabs > 0 { // Tab
			for i := 0; i < c.ReplaceTabs; i++ {
				s = append(s, []byte{0x20, 0x00}...) // Space
			}
			continue
		}

		s = append(s, byte(r&0xff))
		s = append(s, byte(r>>8))

		if r == 0x0a && c.ForceLine { // LF
			s = append(s, []byte{0x0d, 0x00}...) // CR
		}
	}

	if status := c.Output(s); status != EFI_SUCCESS {
		return n, parseStatus(status)
	}

	return len(p), nil
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package key implements keyboard input events following the EFI Simple Text
// Input Protocol scan code table.
package key

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by a non blocking read when no key is queued.
var ErrNotReady = errors.New("key not ready")

// Input represents a raw EFI_INPUT_KEY.
type Input struct {
	ScanCode    uint16
	UnicodeChar uint16
}

// Code represents a named key.
type Code int

// Named keys, the order of scan codes 1 to 23 follows EFI_SCAN_*.
const (
	Character Code = iota
	Backspace
	Tab
	Enter
	Up
	Down
	Right
	Left
	Home
	End
	Insert
	Delete
	PageUp
	PageDown
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	Escape
	Scancode
)

var codeNames = []string{
	"Character", "Backspace", "Tab", "Enter", "Up", "Down", "Right", "Left",
	"Home", "End", "Insert", "Delete", "PageUp", "PageDown",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Escape", "Scancode",
}

func (c Code) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}

	return fmt.Sprintf("Code(%d)", int(c))
}

// Key represents a decoded key event. Rune is only meaningful for Character
// keys, ScanCode only for unknown Scancode keys.
type Key struct {
	Code     Code
	Rune     rune
	ScanCode uint16
}

func (k Key) String() string {
	switch k.Code {
	case Character:
		return fmt.Sprintf("Character(%q)", k.Rune)
	case Scancode:
		return fmt.Sprintf("Scancode(%#x)", k.ScanCode)
	default:
		return k.Code.String()
	}
}

// Char returns a Character key.
func Char(r rune) Key {
	return Key{Code: Character, Rune: r}
}

// EFI scan codes 1 to 23 map to Up through Escape.
const (
	scanUp     = 0x01
	scanEscape = 0x17
)

// FromInput decodes a raw EFI_INPUT_KEY.
func FromInput(in Input) Key {
	switch {
	case in.ScanCode == 0:
		switch in.UnicodeChar {
		case 0x08:
			return Key{Code: Backspace}
		case 0x09:
			return Key{Code: Tab}
		case 0x0d:
			return Key{Code: Enter}
		default:
			return Char(rune(in.UnicodeChar))
		}
	case in.ScanCode >= scanUp && in.ScanCode <= scanEscape:
		return Key{Code: Up + Code(in.ScanCode-scanUp)}
	default:
		return Key{Code: Scancode, ScanCode: in.ScanCode}
	}
}

// Source represents a keyboard input queue.
type Source interface {
	// ReadKey returns the next queued key, when wait is false and no key
	// is queued it returns ErrNotReady.
	ReadKey(wait bool) (Input, error)
}

// Read returns the next decoded key from a source.
func Read(src Source, wait bool) (k Key, err error) {
	in, err := src.ReadKey(wait)

	if err != nil {
		return
	}

	return FromInput(in), nil
}

// Drain discards all queued keys, it returns the number of discarded keys
// and any error other than ErrNotReady.
func Drain(src Source) (n int, err error) {
	for {
		if _, err = src.ReadKey(false); err != nil {
			break
		}

		n++
	}

	if errors.Is(err, ErrNotReady) {
		err = nil
	}

	return
}

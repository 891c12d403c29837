// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fde implements a UEFI Form Display Engine, the setup browser
// component which displays forms, interprets user input and reports the
// user decision back to the form browser.
//
// The forms are owned by the caller and reached only through the Form,
// Statement and Option interfaces for the duration of a single DisplayForm
// invocation.
package fde

import (
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/key"
)

// FrontPageFormID is the form identifier of the setup front page, which
// cannot be exited.
const FrontPageFormID = 0x7600

// BROWSER_ACTION_*
const (
	ActionNone     = 1 << 16
	ActionFormExit = 1 << 17
)

// Form represents a FORM_DISPLAY_ENGINE_FORM.
type Form interface {
	FormID() uint16
	// Handle returns the HII handle for string resolution.
	Handle() uint64
	Title() ifr.StringID
	// Statements returns the form statements in display order.
	Statements() []Statement
	// Highlighted returns the statement to select, nil if none.
	Highlighted() Statement
	// RefreshEvent returns the form refresh event, 0 if none.
	RefreshEvent() uint64
	HotKeys() []HotKey
}

// Statement represents a FORM_DISPLAY_ENGINE_STATEMENT, implementations must
// be comparable and a statement must compare equal to itself across calls.
type Statement interface {
	// OpCode returns the raw IFR opcode of the statement.
	OpCode() []byte
	// Value returns the statement current value.
	Value() ifr.Value
	// Buffer returns a writable view of the statement value buffer, nil
	// if none.
	Buffer() []byte
	Options() []Option
}

// Option represents a DISPLAY_QUESTION_OPTION.
type Option interface {
	// OpCode returns the raw EFI_IFR_ONE_OF_OPTION opcode, nil if the
	// option has none.
	OpCode() []byte
}

// HotKey represents a BROWSER_HOT_KEY.
type HotKey interface {
	Key() key.Input
	Action() uint32
	DefaultID() uint16
	Help() string
}

// Strings represents the HII string resolution service.
type Strings interface {
	String(handle uint64, id ifr.StringID) (string, error)
}

// UserInput represents a USER_INPUT, the outcome of a DisplayForm
// invocation.
type UserInput struct {
	// Statement is the statement the user finalized, nil if none.
	Statement Statement
	// Value is the finalized value.
	Value ifr.Value
	// Action is ActionNone, ActionFormExit, a hot key action or 0 for a
	// statement selection.
	Action uint32
	// DefaultID is the default store of a hot key action.
	DefaultID uint16
}

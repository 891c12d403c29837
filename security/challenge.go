// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package security

import (
	"github.com/system76/firmware-setup/key"
)

// Challenge buttons
const (
	ButtonConfirm = iota
	ButtonCancel
)

// Outcome represents the result of a challenge key press.
type Outcome int

const (
	// Pending challenges wait for more input.
	Pending Outcome = iota
	// Confirmed challenges had the code typed back.
	Confirmed
	// Cancelled challenges were abandoned by the user.
	Cancelled
)

// Challenge represents the input state of a confirmation prompt.
type Challenge struct {
	Code   string
	Input  string
	Button int
}

// Full returns whether the input has as many digits as the code.
func (c *Challenge) Full() bool {
	return len(c.Input) >= len(c.Code)
}

// Handle applies a key press.
func (c *Challenge) Handle(k key.Key) Outcome {
	switch k.Code {
	case key.Backspace:
		if n := len(c.Input); n > 0 {
			c.Input = c.Input[:n-1]
		}
	case key.Character:
		if k.Rune >= '0' && k.Rune <= '9' && !c.Full() {
			c.Input += string(k.Rune)
		}
	case key.Enter:
		if c.Button != ButtonConfirm {
			return Cancelled
		}

		if c.Input == c.Code {
			return Confirmed
		}

		// invalid input
		c.Input = ""
	case key.Escape:
		c.Input = ""
	case key.Down:
		if c.Button < ButtonCancel {
			c.Button++
		}
	case key.Up:
		if c.Button > ButtonConfirm {
			c.Button--
		}
	}

	return Pending
}

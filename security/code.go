// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package security implements the physical presence confirmation required
// before unlocking the firmware for flashing.
//
// A random code is shown on screen and must be typed back on the console,
// cancellation arms the embedded controller lock and shuts the system down.
package security

import (
	"errors"
	"fmt"
	"strings"
)

// CodeGroups is the number of two digit groups of a confirmation code.
const CodeGroups = 4

var (
	// ErrNoEntropy is returned when the random source cannot provide a
	// confirmation code.
	ErrNoEntropy = errors.New("random source unavailable")
	// ErrAborted is returned when the user cancels the confirmation.
	ErrAborted = errors.New("confirmation aborted")
)

// Random represents a hardware random number source.
type Random interface {
	// Read fills b with random bytes.
	Read(b []byte) error
}

// GenerateCode returns a numeric confirmation code, each random byte yields
// two decimal digits.
func GenerateCode(rng Random) (string, error) {
	if rng == nil {
		return "", ErrNoEntropy
	}

	buf := make([]byte, CodeGroups)

	if err := rng.Read(buf); err != nil {
		return "", fmt.Errorf("%w, %v", ErrNoEntropy, err)
	}

	var code strings.Builder

	for _, b := range buf {
		fmt.Fprintf(&code, "%02d", b%100)
	}

	return code.String(), nil
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"github.com/system76/firmware-setup/fde"
)

// EFI Boot Services offsets
const (
	waitForEvent = 0x60
	stall        = 0xf8
)

// WaitForEvent calls EFI_BOOT_SERVICES.WaitForEvent(), it returns the index
// of the signaled event.
func (s *BootServices) WaitForEvent(events ...uint64) (index uint64, err error) {
	if len(events) == 0 {
		return 0, parseStatus(EFI_INVALID_PARAMETER)
	}

	status := callService(s.base+waitForEvent,
		[]uint64{
			uint64(len(events)),
			ptrval(&events[0]),
			ptrval(&index),
		},
	)

	return index, parseStatus(status)
}

// Stall calls EFI_BOOT_SERVICES.Stall().
func (s *BootServices) Stall(us int) (err error) {
	status := callService(s.base+stall,
		[]uint64{
			uint64(us),
		},
	)

	return parseStatus(status)
}

// Events implements the fde.Events interface over the console key event and
// form refresh events.
type Events struct {
	Boot    *BootServices
	Console *Console
}

// Wait implements the fde.Events interface.
func (e *Events) Wait(refresh uint64) (kind fde.EventKind, err error) {
	keys, err := e.Console.WaitForKey()

	if err != nil {
		return
	}

	events := []uint64{keys}

	if refresh != 0 {
		events = append(events, refresh)
	}

	index, err := e.Boot.WaitForEvent(events...)

	if err != nil {
		return
	}

	if index == 0 {
		return fde.Keyboard, nil
	}

	return fde.Driver, nil
}

// Timeout implements the ec.Timeout interface, each poll stalls for one
// microsecond.
type Timeout struct {
	Boot *BootServices
	// Limit is the number of polls before expiration.
	Limit int

	elapsed int
}

// Reset implements the ec.Timeout interface.
func (t *Timeout) Reset() {
	t.elapsed = 0
}

// Running implements the ec.Timeout interface.
func (t *Timeout) Running() bool {
	t.elapsed++
	t.Boot.Stall(1)

	return t.elapsed < t.Limit
}

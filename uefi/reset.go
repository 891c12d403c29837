// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"log"
)

// EFI Runtime Services offset for ResetSystem
const resetSystem = 0x68

// EFI_RESET_SYSTEM
const (
	EfiResetCold = iota
	EfiResetWarm
	EfiResetShutdown
	EfiResetPlatformSpecific
)

// ResetSystem calls EFI_RUNTIME_SERVICES.ResetSystem().
func (s *RuntimeServices) ResetSystem(resetType int) (err error) {
	status := callService(s.base+resetSystem,
		[]uint64{
			uint64(resetType),
			EFI_SUCCESS,
			0,
			0,
		},
	)

	return parseStatus(status)
}

// Shutdown powers off the system, it only returns on failure.
func (s *RuntimeServices) Shutdown() {
	if err := s.ResetSystem(EfiResetShutdown); err != nil {
		log.Printf("could not shutdown, %v", err)
	}
}

// Reboot performs a cold reset, it only returns on failure.
func (s *RuntimeServices) Reboot() {
	if err := s.ResetSystem(EfiResetCold); err != nil {
		log.Printf("could not reboot, %v", err)
	}
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"log"

	"github.com/system76/firmware-setup/fde"
)

var (
	EFI_FORM_DISPLAY_ENGINE_PROTOCOL_GUID = MustParseGUID("9bbe29e9-fda1-41ec-ad52-452213742d2e")
	SYSTEM76_SECURITY_PROTOCOL_GUID       = MustParseGUID("764247c4-a859-4a6b-b500-ed5d7a707dd4")
)

// defined in efi_amd64.s
func entryPoints() (formDisplay, exitDisplay, confirmDataChange, securityRun uint64)

// Displayer represents a form display engine.
type Displayer interface {
	DisplayForm(form fde.Form) (fde.UserInput, error)
	ExitDisplay()
	ConfirmDataChange() uint64
}

// formDisplayProtocol represents an EDKII_FORM_DISPLAY_ENGINE_PROTOCOL.
type formDisplayProtocol struct {
	FormDisplay       uint64
	ExitDisplay       uint64
	ConfirmDataChange uint64
}

// securityProtocol represents a SYSTEM76_SECURITY_PROTOCOL, its memory is
// handed over to the firmware.
var securityProtocol [1]uint64

// installed handlers
var (
	displayer Displayer
	security  func() bool

	// overridden form display engine protocol
	formDisplayAddr     uint64
	formDisplayOriginal *formDisplayProtocol
	securityHandle      uint64
)

// InstallFormDisplay overrides the form display engine protocol functions
// with d.
func (s *BootServices) InstallFormDisplay(d Displayer) (err error) {
	if d == nil {
		return errors.New("invalid form display engine")
	}

	addr, err := s.LocateProtocol(EFI_FORM_DISPLAY_ENGINE_PROTOCOL_GUID)

	if err != nil {
		return
	}

	if formDisplayOriginal == nil {
		formDisplayOriginal = &formDisplayProtocol{}

		if err = decode(formDisplayOriginal, addr); err != nil {
			formDisplayOriginal = nil
			return
		}
	}

	displayer = d
	formDisplayAddr = addr
	fd, ed, cd, _ := entryPoints()

	return encode(&formDisplayProtocol{
		FormDisplay:       fd,
		ExitDisplay:       ed,
		ConfirmDataChange: cd,
	}, addr)
}

// RestoreFormDisplay restores the form display engine protocol functions
// overridden by InstallFormDisplay.
func (s *BootServices) RestoreFormDisplay() (err error) {
	if formDisplayOriginal == nil {
		return errors.New("form display engine not installed")
	}

	if err = encode(formDisplayOriginal, formDisplayAddr); err != nil {
		return
	}

	displayer = nil
	formDisplayOriginal = nil

	return
}

// InstallSecurity installs the security protocol, run is invoked on each
// protocol Run() call.
func (s *BootServices) InstallSecurity(run func() bool) (handle uint64, err error) {
	if run == nil {
		return 0, errors.New("invalid security handler")
	}

	if securityHandle != 0 {
		return 0, errors.New("security protocol already installed")
	}

	security = run
	_, _, _, securityProtocol[0] = entryPoints()

	if securityHandle, err = s.InstallProtocolInterface(SYSTEM76_SECURITY_PROTOCOL_GUID, ptrval(&securityProtocol[0])); err != nil {
		securityHandle = 0
	}

	return securityHandle, err
}

// UninstallSecurity removes the security protocol installed by
// InstallSecurity.
func (s *BootServices) UninstallSecurity() (err error) {
	if securityHandle == 0 {
		return errors.New("security protocol not installed")
	}

	if err = s.UninstallProtocolInterface(securityHandle, SYSTEM76_SECURITY_PROTOCOL_GUID, ptrval(&securityProtocol[0])); err != nil {
		return
	}

	security = nil
	securityHandle = 0

	return
}

// called from efi_amd64.s
func formDisplay(form uint64, input uint64) (status uint64) {
	if displayer == nil {
		return EFI_NOT_READY
	}

	f, err := NewFormView(form)

	if err != nil {
		log.Printf("invalid form, %v", err)
		return EFI_INVALID_PARAMETER
	}

	in, err := displayer.DisplayForm(f)

	if err != nil {
		log.Printf("form display error, %v", err)

		if errors.Is(err, fde.ErrNoResources) {
			return EFI_OUT_OF_RESOURCES
		}

		return EFI_DEVICE_ERROR
	}

	if err = f.WriteInput(input, in); err != nil {
		log.Printf("could not write user input, %v", err)
		return EFI_DEVICE_ERROR
	}

	return EFI_SUCCESS
}

// called from efi_amd64.s
func exitDisplay() {
	if displayer != nil {
		displayer.ExitDisplay()
	}
}

// called from efi_amd64.s
func confirmDataChange() uint64 {
	if displayer == nil {
		return 0
	}

	return displayer.ConfirmDataChange()
}

// called from efi_amd64.s
func securityRun() uint64 {
	if security != nil && security() {
		return 1
	}

	return 0
}

// Copyright (c) The go-boot authors. All Rights Reserved.
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

// EFI Boot Services offsets
const (
	installProtocolInterface   = 0x080
	uninstallProtocolInterface = 0x090
	handleProtocol             = 0x098
	locateProtocol             = 0x140
)

// EFI_INTERFACE_TYPE
const (
	EfiNativeInterface = iota
)

// InstallProtocolInterface calls EFI_BOOT_SERVICES.InstallProtocolInterface()
// on a new handle, which is returned.
func (s *BootServices) InstallProtocolInterface(guid GUID, iface uint64) (handle uint64, err error) {
	status := callService(s.base+installProtocolInterface,
		[]uint64{
			ptrval(&handle),
			guid.ptrval(),
			EfiNativeInterface,
			iface,
		},
	)

	return handle, parseStatus(status)
}

// UninstallProtocolInterface calls
// EFI_BOOT_SERVICES.UninstallProtocolInterface().
func (s *BootServices) UninstallProtocolInterface(handle uint64, guid GUID, iface uint64) (err error) {
	status := callService(s.base+uninstallProtocolInterface,
		[]uint64{
			handle,
			guid.ptrval(),
			iface,
		},
	)

	return parseStatus(status)
}

// HandleProtocol calls EFI_BOOT_SERVICES.HandleProtocol().
func (s *BootServices) HandleProtocol(handle uint64, guid GUID) (addr uint64, err error) {
	status := callService(s.base+handleProtocol,
		[]uint64{
			handle,
			guid.ptrval(),
			ptrval(&addr),
		},
	)

	return addr, parseStatus(status)
}

// LocateProtocol calls EFI_BOOT_SERVICES.LocateProtocol().
func (s *BootServices) LocateProtocol(guid GUID) (addr uint64, err error) {
	status := callService(s.base+locateProtocol,
		[]uint64{
			guid.ptrval(),
			0,
			ptrval(&addr),
		},
	)

	return addr, parseStatus(status)
}

// LocateProtocolString is like LocateProtocol but takes a registry format
// GUID.
func (s *BootServices) LocateProtocolString(g string) (addr uint64, err error) {
	guid, err := ParseGUID(g)

	if err != nil {
		return
	}

	return s.LocateProtocol(guid)
}

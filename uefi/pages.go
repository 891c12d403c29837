// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
)

// EFI Boot Service offset for AllocatePages
const allocatePages = 0x28

// EFI_ALLOCATE_TYPE
const (
	AllocateAnyPages = iota
	AllocateMaxAddress
	AllocateAddress
	MaxAllocateType
)

// EFI_MEMORY_TYPE
const (
	EfiReservedMemoryType = iota
	EfiLoaderCode
	EfiLoaderData
	EfiBootServicesCode
	EfiBootServicesData
	EfiRuntimeServicesCode
	EfiRuntimeServicesData
	EfiConventionalMemory
	EfiUnusableMemory
	EfiACPIReclaimMemory
	EfiACPIMemoryNVS
	EfiMemoryMappedIO
	EfiMemoryMappedIOPortSpace
	EfiPalCode
	EfiPersistentMemory
	EfiUnacceptedMemoryType
	EfiMaxMemoryType
)

// AllocatePages calls EFI_BOOT_SERVICES.AllocatePages(), size is rounded
// down to whole pages.
func (s *BootServices) AllocatePages(allocateType int, memoryType int, size int, physicalAddress uint64) error {
	if size < PageSize {
		return errors.New("invalid size")
	}

	status := callService(s.base+allocatePages,
		[]uint64{
			uint64(allocateType),
			uint64(memoryType),
			uint64(size) / PageSize,
			ptrval(&physicalAddress),
		},
	)

	return parseStatus(status)
}

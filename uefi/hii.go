// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"errors"
	"unicode/utf16"

	"github.com/system76/firmware-setup/ifr"
)

var (
	EFI_HII_STRING_PROTOCOL_GUID   = MustParseGUID("0fd96974-23aa-4cdc-b9cb-98d17750322a")
	EFI_HII_DATABASE_PROTOCOL_GUID = MustParseGUID("ef9fc172-a1b2-4693-b327-6d32fc416042")
)

const (
	// EFI HII String Protocol offsets
	getString = 0x08

	// EFI HII Database Protocol offsets
	listPackageLists = 0x18

	// EFI_HII_PACKAGE_FORMS
	PackageForms = 0x02

	// maximum string size in bytes
	maxStringSize = 8192
)

// Language is the RFC 4646 language of resolved strings.
var Language = "en-US"

// DecodeString converts a null terminated UCS-2 string to UTF-8.
func DecodeString(buf []byte) string {
	var s []uint16

	for i := 0; i+1 < len(buf); i += 2 {
		c := binary.LittleEndian.Uint16(buf[i : i+2])

		if c == 0x00 {
			break
		}

		s = append(s, c)
	}

	return string(utf16.Decode(s))
}

// readString reads a null terminated UCS-2 string from firmware memory.
func readString(addr uint64) (string, error) {
	var s []uint16
	var c uint16

	for i := uint64(0); i < maxStringSize; i += 2 {
		if err := decode(&c, addr+i); err != nil {
			return "", err
		}

		if c == 0x00 {
			break
		}

		s = append(s, c)
	}

	return string(utf16.Decode(s)), nil
}

// HiiString represents an EFI HII String Protocol instance.
type HiiString struct {
	base uint64
}

// GetHiiString locates and returns the EFI HII String Protocol instance.
func (s *BootServices) GetHiiString() (h *HiiString, err error) {
	h = &HiiString{}

	if h.base, err = s.LocateProtocol(EFI_HII_STRING_PROTOCOL_GUID); err != nil {
		return nil, err
	}

	return
}

// GetString calls EFI_HII_STRING_PROTOCOL.GetString().
func (h *HiiString) GetString(handle uint64, id ifr.StringID) (s string, err error) {
	if h == nil || h.base == 0 {
		return "", errors.New("invalid HII string protocol")
	}

	lang := append([]byte(Language), 0x00)
	buf := make([]byte, maxStringSize)
	size := uint64(len(buf))

	status := callService(h.base+getString,
		[]uint64{
			h.base,
			ptrval(&lang[0]),
			handle,
			uint64(id),
			ptrval(&buf[0]),
			ptrval(&size),
			0,
		},
	)

	if err = parseStatus(status); err != nil {
		return
	}

	return DecodeString(buf[:min(size, uint64(len(buf)))]), nil
}

// String implements the fde.Strings interface.
func (h *HiiString) String(handle uint64, id ifr.StringID) (string, error) {
	return h.GetString(handle, id)
}

// HiiDatabase represents an EFI HII Database Protocol instance.
type HiiDatabase struct {
	base uint64
}

// GetHiiDatabase locates and returns the EFI HII Database Protocol instance.
func (s *BootServices) GetHiiDatabase() (h *HiiDatabase, err error) {
	h = &HiiDatabase{}

	if h.base, err = s.LocateProtocol(EFI_HII_DATABASE_PROTOCOL_GUID); err != nil {
		return nil, err
	}

	return
}

// ListPackageLists calls EFI_HII_DATABASE_PROTOCOL.ListPackageLists(), it
// returns the handles of all package lists holding packages of the argument
// type.
func (h *HiiDatabase) ListPackageLists(packageType uint8) (handles []uint64, err error) {
	n := 64

	for range 2 {
		handles = make([]uint64, n)
		size := uint64(n * 8)

		status := callService(h.base+listPackageLists,
			[]uint64{
				h.base,
				uint64(packageType),
				0,
				ptrval(&size),
				ptrval(&handles[0]),
			},
		)

		err = parseStatus(status)

		if errors.Is(err, ErrBufferTooSmall) {
			n = int(size/8) + 1
			continue
		}

		if err != nil {
			return nil, err
		}

		return handles[:size/8], nil
	}

	return nil, err
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"fmt"
)

// EFI_STATUS error bit
const errorBit = 1 << 63

// EFI_STATUS codes
const (
	EFI_SUCCESS           = 0
	EFI_LOAD_ERROR        = errorBit | 1
	EFI_INVALID_PARAMETER = errorBit | 2
	EFI_UNSUPPORTED       = errorBit | 3
	EFI_BAD_BUFFER_SIZE   = errorBit | 4
	EFI_BUFFER_TOO_SMALL  = errorBit | 5
	EFI_NOT_READY         = errorBit | 6
	EFI_DEVICE_ERROR      = errorBit | 7
	EFI_OUT_OF_RESOURCES  = errorBit | 9
	EFI_NOT_FOUND         = errorBit | 14
	EFI_ABORTED           = errorBit | 21
)

var (
	// ErrNotReady is returned for the EFI_NOT_READY status.
	ErrNotReady = errors.New("EFI_NOT_READY")
	// ErrBufferTooSmall is returned for the EFI_BUFFER_TOO_SMALL status.
	ErrBufferTooSmall = errors.New("EFI_BUFFER_TOO_SMALL")
	// ErrNotFound is returned for the EFI_NOT_FOUND status.
	ErrNotFound = errors.New("EFI_NOT_FOUND")
)

// StatusError represents a failed EFI_STATUS.
type StatusError struct {
	Status uint64
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("EFI_STATUS error %#x (%d)", e.Status, e.Status&0xff)
}

// Unwrap returns the sentinel error matching the status, if any.
func (e *StatusError) Unwrap() error {
	switch e.Status {
	case EFI_NOT_READY:
		return ErrNotReady
	case EFI_BUFFER_TOO_SMALL:
		return ErrBufferTooSmall
	case EFI_NOT_FOUND:
		return ErrNotFound
	default:
		return nil
	}
}

func parseStatus(status uint64) (err error) {
	switch {
	case status&errorBit != 0:
		return &StatusError{Status: status}
	default:
		// warnings are not errors
		return
	}
}

// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/usbarmory/tamago/dma"
)

const align = 8

func marshalBinary(data any) (buf []byte, err error) {
	b := new(bytes.Buffer)
	err = binary.Write(b, binary.LittleEndian, data)
	return b.Bytes(), err
}

func unmarshalBinary(buf []byte, data any) (err error) {
	_, err = binary.Decode(buf, binary.LittleEndian, data)
	return
}

// mem returns a view of firmware memory, the view remains valid for the
// lifetime of the underlying firmware allocation.
func mem(addr uint64, size int) (buf []byte, err error) {
	if addr == 0 {
		return nil, errors.New("invalid address")
	}

	if size <= 0 {
		return nil, errors.New("invalid size")
	}

	n := size + (size % align)

	r, err := dma.NewRegion(uint(addr), n, false)

	if err != nil {
		return
	}

	_, buf = r.Reserve(size, 0)

	return
}

func decode(data any, addr uint64) (err error) {
	if addr == 0 {
		return errors.New("invalid address")
	}

	t, _ := marshalBinary(data)
	n := len(t) + (len(t) % align)

	r, err := dma.NewRegion(uint(addr), n, true)

	if err != nil {
		return
	}

	ptr, buf := r.Reserve(len(t), 0)
	defer r.Release(ptr)

	return unmarshalBinary(buf, data)
}

// encode writes data to firmware memory, blank fields are written as zero.
func encode(data any, addr uint64) (err error) {
	t, err := marshalBinary(data)

	if err != nil {
		return
	}

	buf, err := mem(addr, len(t))

	if err != nil {
		return
	}

	copy(buf, t)

	return
}

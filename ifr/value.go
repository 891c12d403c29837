// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package ifr implements the subset of the UEFI Internal Forms Representation
// (IFR) needed by a form display engine, following the specifications at:
//
//	https://uefi.org/specs/UEFI/2.10/33_HII_Code_Definitions.html
//
// It covers question values (EFI_IFR_TYPE_VALUE), statement and option
// opcodes and the byte layout of ordered list question buffers.
package ifr

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Kind represents an EFI_IFR_TYPE_* value type.
type Kind uint8

// EFI_IFR_TYPE_*
const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindU64
	KindBool
	KindTime
	KindDate
	KindString
	KindOther
	KindUndefined
	KindAction
	KindBuffer
	KindRef
)

// UnionSize is the size of the EFI_IFR_TYPE_VALUE union, the largest
// member being EFI_HII_REF (22 bytes) aligned to 8.
const UnionSize = 24

// Value represents a question or option value. Only unsigned integers of 1,
// 2, 4 and 8 bytes and booleans are interpreted, all other kinds are carried
// as raw union bytes.
type Value struct {
	kind Kind
	num  uint64
	raw  []byte
}

// U8 returns an 8-bit numeric value.
func U8(v uint8) Value { return Value{kind: KindU8, num: uint64(v)} }

// U16 returns a 16-bit numeric value.
func U16(v uint16) Value { return Value{kind: KindU16, num: uint64(v)} }

// U32 returns a 32-bit numeric value.
func U32(v uint32) Value { return Value{kind: KindU32, num: uint64(v)} }

// U64 returns a 64-bit numeric value.
func U64(v uint64) Value { return Value{kind: KindU64, num: v} }

// Bool returns a boolean value.
func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, num: 1}
	}

	return Value{kind: KindBool}
}

// Other returns a value of an uninterpreted kind carrying its raw union
// bytes.
func Other(kind Kind, raw []byte) Value {
	return Value{kind: kind, raw: append([]byte(nil), raw...)}
}

// Kind returns the value type.
func (v Value) Kind() Kind {
	return v.kind
}

// Numeric returns whether the value is an unsigned integer.
func (v Value) Numeric() bool {
	return v.kind <= KindU64
}

// Width returns the native width in bytes of a numeric value, 0 for any
// other kind.
func (v Value) Width() int {
	switch v.kind {
	case KindU8:
		return 1
	case KindU16:
		return 2
	case KindU32:
		return 4
	case KindU64:
		return 8
	default:
		return 0
	}
}

// Uint64 returns the value of a numeric value.
func (v Value) Uint64() (n uint64, ok bool) {
	if !v.Numeric() {
		return 0, false
	}

	return v.num, true
}

// Bool returns the value of a boolean value.
func (v Value) Bool() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.num != 0, true
}

// Bytes returns the raw union bytes of an uninterpreted value.
func (v Value) Bytes() []byte {
	return v.raw
}

// Equal returns whether two values are of the same variant with the same
// payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	if v.Numeric() || v.kind == KindBool {
		return v.num == o.num
	}

	return bytes.Equal(v.raw, o.raw)
}

func (v Value) String() string {
	switch {
	case v.Numeric():
		return fmt.Sprintf("%d", v.num)
	case v.kind == KindBool:
		return fmt.Sprintf("%v", v.num != 0)
	default:
		return fmt.Sprintf("%d:%x", v.kind, v.raw)
	}
}

// DecodeValue returns the value held in an EFI_IFR_TYPE_VALUE union of the
// argument kind. Short unions are zero extended.
func DecodeValue(kind Kind, raw []byte) Value {
	var u [UnionSize]byte
	copy(u[:], raw)

	switch kind {
	case KindU8:
		return U8(u[0])
	case KindU16:
		return U16(binary.LittleEndian.Uint16(u[:]))
	case KindU32:
		return U32(binary.LittleEndian.Uint32(u[:]))
	case KindU64:
		return U64(binary.LittleEndian.Uint64(u[:]))
	case KindBool:
		return Bool(u[0] != 0)
	default:
		n := len(raw)

		if n > UnionSize {
			n = UnionSize
		}

		return Other(kind, u[:n])
	}
}

// Union returns the value kind and its EFI_IFR_TYPE_VALUE union image.
func (v Value) Union() (kind Kind, u [UnionSize]byte) {
	switch {
	case v.Numeric() || v.kind == KindBool:
		binary.LittleEndian.PutUint64(u[:], v.num)
	default:
		copy(u[:], v.raw)
	}

	return v.kind, u
}

// put writes the native encoding of a numeric value, it returns false if b is
// too short or the value is not numeric.
func (v Value) put(b []byte) bool {
	w := v.Width()

	if w == 0 || len(b) < w {
		return false
	}

	switch w {
	case 1:
		b[0] = uint8(v.num)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v.num))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v.num))
	case 8:
		binary.LittleEndian.PutUint64(b, v.num)
	}

	return true
}

// matches returns whether b starts with the native encoding of a numeric
// value.
func (v Value) matches(b []byte) bool {
	w := v.Width()

	if w == 0 || len(b) < w {
		return false
	}

	return DecodeValue(v.kind, b[:w]).num == v.num
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ifr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// OpCode represents an EFI_IFR_*_OP opcode.
type OpCode uint8

// EFI_IFR_*_OP
const (
	OpForm         OpCode = 0x01
	OpSubtitle     OpCode = 0x02
	OpText         OpCode = 0x03
	OpImage        OpCode = 0x04
	OpOneOf        OpCode = 0x05
	OpCheckbox     OpCode = 0x06
	OpNumeric      OpCode = 0x07
	OpPassword     OpCode = 0x08
	OpOneOfOption  OpCode = 0x09
	OpSuppressIf   OpCode = 0x0a
	OpLocked       OpCode = 0x0b
	OpAction       OpCode = 0x0c
	OpResetButton  OpCode = 0x0d
	OpFormSet      OpCode = 0x0e
	OpRef          OpCode = 0x0f
	OpNoSubmitIf   OpCode = 0x10
	OpInconsistIf  OpCode = 0x11
	OpDate         OpCode = 0x1a
	OpTime         OpCode = 0x1b
	OpString       OpCode = 0x1c
	OpRefresh      OpCode = 0x1d
	OpDisableIf    OpCode = 0x1e
	OpOrderedList  OpCode = 0x23
	OpVarStore     OpCode = 0x24
	OpEnd          OpCode = 0x29
	OpDefault      OpCode = 0x5b
	OpDefaultStore OpCode = 0x5c
	OpGUID         OpCode = 0x5f
)

var opNames = map[OpCode]string{
	OpForm:        "Form",
	OpSubtitle:    "Subtitle",
	OpText:        "Text",
	OpImage:       "Image",
	OpOneOf:       "OneOf",
	OpCheckbox:    "Checkbox",
	OpNumeric:     "Numeric",
	OpPassword:    "Password",
	OpOneOfOption: "OneOfOption",
	OpAction:      "Action",
	OpResetButton: "ResetButton",
	OpFormSet:     "FormSet",
	OpRef:         "Ref",
	OpDate:        "Date",
	OpTime:        "Time",
	OpString:      "String",
	OpOrderedList: "OrderedList",
	OpEnd:         "End",
	OpGUID:        "Guid",
}

func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}

	return fmt.Sprintf("OpCode(%#02x)", uint8(op))
}

// Question returns whether the opcode introduces a question, and therefore
// carries an EFI_IFR_QUESTION_HEADER.
func (op OpCode) Question() bool {
	switch op {
	case OpOneOf, OpCheckbox, OpNumeric, OpPassword, OpAction, OpRef,
		OpDate, OpTime, OpString, OpOrderedList:
		return true
	default:
		return false
	}
}

// StringID represents an EFI_STRING_ID.
type StringID uint16

// EFI_IFR_NUMERIC_SIZE
const numericSizeMask = 0x03

// ErrShortOpCode is returned when an opcode is shorter than its declared or
// required size.
var ErrShortOpCode = errors.New("opcode too short")

// EFI_IFR_STATEMENT_HEADER
type statementHeader struct {
	Prompt uint16
	Help   uint16
}

// EFI_IFR_QUESTION_HEADER
type questionHeader struct {
	Statement    statementHeader
	QuestionID   uint16
	VarStoreID   uint16
	VarStoreInfo uint16
	Flags        uint8
}

// Statement represents a decoded statement or question opcode.
type Statement struct {
	OpCode OpCode
	Scope  bool

	Prompt StringID
	Help   StringID

	// question header, zero for statements which are not questions
	QuestionID    uint16
	VarStoreID    uint16
	VarStoreInfo  uint16
	QuestionFlags uint8

	// Flags holds the opcode specific flags (checkbox, numeric, one-of,
	// ordered list and subtitle).
	Flags uint8

	// Minimum, Maximum and Step hold numeric and one-of ranges, in the
	// width selected by Flags.
	Minimum uint64
	Maximum uint64
	Step    uint64

	// MaxContainers holds the ordered list capacity.
	MaxContainers uint8

	// FormID holds the target form of a reference.
	FormID uint16
}

// readHeader decodes an EFI_IFR_OP_HEADER (OpCode, Length:7, Scope:1).
func readHeader(raw []byte) (op OpCode, scope bool, err error) {
	if len(raw) < 2 {
		return 0, false, ErrShortOpCode
	}

	length := int(raw[1] & 0x7f)

	if length < 2 || len(raw) < length {
		return 0, false, ErrShortOpCode
	}

	return OpCode(raw[0]), raw[1]&0x80 != 0, nil
}

// ParseStatement decodes a statement opcode, raw must start at its
// EFI_IFR_OP_HEADER and span at least its declared length.
func ParseStatement(raw []byte) (s Statement, err error) {
	if s.OpCode, s.Scope, err = readHeader(raw); err != nil {
		return
	}

	r := bytes.NewReader(raw[2 : raw[1]&0x7f])

	if !s.OpCode.Question() {
		var h statementHeader

		if err = binary.Read(r, binary.LittleEndian, &h); err != nil {
			return s, fmt.Errorf("%v statement header, %w", s.OpCode, ErrShortOpCode)
		}

		s.Prompt = StringID(h.Prompt)
		s.Help = StringID(h.Help)

		if s.OpCode == OpSubtitle {
			s.Flags, _ = r.ReadByte()
		}

		return
	}

	var q questionHeader

	if err = binary.Read(r, binary.LittleEndian, &q); err != nil {
		return s, fmt.Errorf("%v question header, %w", s.OpCode, ErrShortOpCode)
	}

	s.Prompt = StringID(q.Statement.Prompt)
	s.Help = StringID(q.Statement.Help)
	s.QuestionID = q.QuestionID
	s.VarStoreID = q.VarStoreID
	s.VarStoreInfo = q.VarStoreInfo
	s.QuestionFlags = q.Flags

	switch s.OpCode {
	case OpCheckbox:
		s.Flags, _ = r.ReadByte()
	case OpNumeric, OpOneOf:
		if s.Flags, err = r.ReadByte(); err != nil {
			return s, fmt.Errorf("%v flags, %w", s.OpCode, ErrShortOpCode)
		}

		width := 1 << (s.Flags & numericSizeMask)
		data := make([]byte, width*3)

		if _, err = io.ReadFull(r, data); err != nil {
			return s, fmt.Errorf("%v range, %w", s.OpCode, ErrShortOpCode)
		}

		kind := Kind(s.Flags & numericSizeMask)
		s.Minimum, _ = DecodeValue(kind, data[0:width]).Uint64()
		s.Maximum, _ = DecodeValue(kind, data[width:2*width]).Uint64()
		s.Step, _ = DecodeValue(kind, data[2*width:]).Uint64()
	case OpOrderedList:
		s.MaxContainers, _ = r.ReadByte()
		s.Flags, _ = r.ReadByte()
	case OpRef:
		var id uint16

		if binary.Read(r, binary.LittleEndian, &id) == nil {
			s.FormID = id
		}
	}

	return s, nil
}

// MarshalBinary returns the opcode encoding of a statement, with the range
// width of numeric and one-of questions selected by Flags.
func (s Statement) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.Write([]byte{uint8(s.OpCode), 0})

	if !s.OpCode.Question() {
		binary.Write(b, binary.LittleEndian, statementHeader{uint16(s.Prompt), uint16(s.Help)})

		if s.OpCode == OpSubtitle {
			b.WriteByte(s.Flags)
		}
	} else {
		binary.Write(b, binary.LittleEndian, questionHeader{
			Statement:    statementHeader{uint16(s.Prompt), uint16(s.Help)},
			QuestionID:   s.QuestionID,
			VarStoreID:   s.VarStoreID,
			VarStoreInfo: s.VarStoreInfo,
			Flags:        s.QuestionFlags,
		})

		switch s.OpCode {
		case OpCheckbox:
			b.WriteByte(s.Flags)
		case OpNumeric, OpOneOf:
			b.WriteByte(s.Flags)

			kind := Kind(s.Flags & numericSizeMask)

			for _, n := range []uint64{s.Minimum, s.Maximum, s.Step} {
				var v Value

				switch kind {
				case KindU8:
					v = U8(uint8(n))
				case KindU16:
					v = U16(uint16(n))
				case KindU32:
					v = U32(uint32(n))
				default:
					v = U64(n)
				}

				buf := make([]byte, v.Width())
				v.put(buf)
				b.Write(buf)
			}
		case OpOrderedList:
			b.Write([]byte{s.MaxContainers, s.Flags})
		case OpRef:
			binary.Write(b, binary.LittleEndian, s.FormID)
		}
	}

	return finish(b.Bytes(), s.Scope)
}

// EFI_IFR_ONE_OF_OPTION fixed part
type optionHeader struct {
	Option uint16
	Flags  uint8
	Type   uint8
}

// Option represents a decoded EFI_IFR_ONE_OF_OPTION.
type Option struct {
	Prompt StringID
	Flags  uint8
	Value  Value
}

// ParseOption decodes an EFI_IFR_ONE_OF_OPTION opcode.
func ParseOption(raw []byte) (o Option, err error) {
	op, _, err := readHeader(raw)

	if err != nil {
		return
	}

	if op != OpOneOfOption {
		return o, fmt.Errorf("invalid option opcode %v", op)
	}

	var h optionHeader
	r := bytes.NewReader(raw[2 : raw[1]&0x7f])

	if err = binary.Read(r, binary.LittleEndian, &h); err != nil {
		return o, fmt.Errorf("option header, %w", ErrShortOpCode)
	}

	value := make([]byte, r.Len())
	r.Read(value)

	kind := Kind(h.Type)

	if w := (Value{kind: kind}).Width(); w > len(value) || (kind == KindBool && len(value) == 0) {
		return o, fmt.Errorf("option value, %w", ErrShortOpCode)
	}

	o.Prompt = StringID(h.Option)
	o.Flags = h.Flags
	o.Value = DecodeValue(kind, value)

	return
}

// MarshalBinary returns the EFI_IFR_ONE_OF_OPTION encoding of an option.
func (o Option) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.Write([]byte{uint8(OpOneOfOption), 0})

	kind, u := o.Value.Union()
	binary.Write(b, binary.LittleEndian, optionHeader{uint16(o.Prompt), o.Flags, uint8(kind)})

	switch {
	case o.Value.Numeric():
		b.Write(u[:o.Value.Width()])
	case kind == KindBool:
		b.Write(u[:1])
	default:
		b.Write(o.Value.Bytes())
	}

	return finish(b.Bytes(), false)
}

func finish(buf []byte, scope bool) ([]byte, error) {
	if len(buf) > 0x7f {
		return nil, fmt.Errorf("opcode length %d exceeds limit", len(buf))
	}

	buf[1] = uint8(len(buf))

	if scope {
		buf[1] |= 0x80
	}

	return buf, nil
}

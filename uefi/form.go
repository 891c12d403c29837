// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"fmt"

	"github.com/system76/firmware-setup/fde"
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/key"
)

const (
	// maximum number of entries walked in a single list
	maxListEntries = 4096

	// LIST_ENTRY offsets within the form display structures
	statementListOffset = 16
	hotKeyListOffset    = 112
	displayLinkOffset   = 16
	optionListOffset    = 112
	optionLinkOffset    = 8
	hotKeyLinkOffset    = 8
)

type listEntry struct {
	Flink uint64
	Blink uint64
}

// hiiValue represents an EFI_HII_VALUE.
type hiiValue struct {
	Type      uint8
	_         [7]byte
	Buffer    uint64
	BufferLen uint16
	_         [6]byte
	Value     [ifr.UnionSize]byte
}

// formData represents a FORM_DISPLAY_ENGINE_FORM.
type formData struct {
	Signature            uint64
	Version              uint64
	StatementListHead    listEntry
	StatementListOSF     listEntry
	ScreenDimensions     uint64
	FormSetGUID          GUID
	HiiHandle            uint64
	FormID               uint16
	FormTitle            uint16
	Attribute            uint32
	SettingChangedFlag   uint8
	_                    [7]byte
	HighlightedStatement uint64
	FormRefreshEvent     uint64
	HotKeyListHead       listEntry
	ImageID              uint16
	AnimationID          uint16
	BrowserStatus        uint32
	ErrorString          uint64
}

// statementData represents a FORM_DISPLAY_ENGINE_STATEMENT.
type statementData struct {
	Signature          uint64
	Version            uint64
	DisplayLink        listEntry
	OpCode             uint64
	CurrentValue       hiiValue
	SettingChangedFlag uint8
	_                  [7]byte
	NestStatementList  listEntry
	OptionListHead     listEntry
	Attribute          uint32
	_                  uint32
	ValidateQuestion   uint64
	PasswordCheck      uint64
	ImageID            uint16
	AnimationID        uint16
	_                  uint32
}

// optionData represents a DISPLAY_QUESTION_OPTION.
type optionData struct {
	Signature    uint64
	Link         listEntry
	OptionOpCode uint64
	ImageID      uint16
	AnimationID  uint16
	_            uint32
}

// hotKeyData represents a BROWSER_HOT_KEY.
type hotKeyData struct {
	Signature  uint64
	Link       listEntry
	KeyData    uint64
	Action     uint32
	DefaultID  uint16
	_          uint16
	HelpString uint64
}

// userInput represents a USER_INPUT.
type userInput struct {
	SelectedStatement uint64
	InputValue        hiiValue
	Action            uint32
	DefaultID         uint16
	_                 uint16
}

// list returns the addresses of the objects linked to a list head, link is
// the offset of the LIST_ENTRY within each object.
func list(head uint64, link uint64) (objs []uint64, err error) {
	e := &listEntry{}

	if err = decode(e, head); err != nil {
		return
	}

	for addr := e.Flink; addr != head; addr = e.Flink {
		if addr == 0 {
			return nil, errors.New("invalid list entry")
		}

		if len(objs) == maxListEntries {
			return nil, errors.New("list entries limit exceeded")
		}

		objs = append(objs, addr-link)

		if err = decode(e, addr); err != nil {
			return
		}
	}

	return
}

// opCode returns a copy of the IFR opcode at addr, nil if addr is 0.
func opCode(addr uint64) (raw []byte, err error) {
	if addr == 0 {
		return
	}

	hdr, err := mem(addr, 2)

	if err != nil {
		return
	}

	buf, err := mem(addr, max(int(hdr[1]&0x7f), 2))

	if err != nil {
		return
	}

	return append([]byte(nil), buf...), nil
}

// FormView implements fde.Form over a FORM_DISPLAY_ENGINE_FORM owned by the
// form browser, it is only valid during the FormDisplay call which provided
// it.
type FormView struct {
	addr uint64
	data formData

	statements []*StatementView
	hotKeys    []*HotKeyView
}

// NewFormView reads the form at addr along with its statements, options and
// hot keys.
func NewFormView(addr uint64) (f *FormView, err error) {
	f = &FormView{addr: addr}

	if err = decode(&f.data, addr); err != nil {
		return nil, fmt.Errorf("could not read form, %v", err)
	}

	statements, err := list(addr+statementListOffset, displayLinkOffset)

	if err != nil {
		return nil, fmt.Errorf("could not read statements, %v", err)
	}

	for _, s := range statements {
		st, err := newStatementView(s)

		if err != nil {
			return nil, err
		}

		f.statements = append(f.statements, st)
	}

	hotKeys, err := list(addr+hotKeyListOffset, hotKeyLinkOffset)

	if err != nil {
		return nil, fmt.Errorf("could not read hot keys, %v", err)
	}

	for _, h := range hotKeys {
		hk, err := newHotKeyView(h)

		if err != nil {
			return nil, err
		}

		f.hotKeys = append(f.hotKeys, hk)
	}

	return
}

func (f *FormView) FormID() uint16 { return f.data.FormID }
func (f *FormView) Handle() uint64 { return f.data.HiiHandle }
func (f *FormView) Title() ifr.StringID { return ifr.StringID(f.data.FormTitle) }
func (f *FormView) RefreshEvent() uint64 { return f.data.FormRefreshEvent }
func (f *FormView) FormSetGUID() GUID { return f.data.FormSetGUID }

func (f *FormView) Statements() (s []fde.Statement) {
	for _, st := range f.statements {
		s = append(s, st)
	}

	return
}

func (f *FormView) Highlighted() fde.Statement {
	for _, st := range f.statements {
		if st.addr == f.data.HighlightedStatement {
			return st
		}
	}

	return nil
}

func (f *FormView) HotKeys() (h []fde.HotKey) {
	for _, hk := range f.hotKeys {
		h = append(h, hk)
	}

	return
}

// WriteInput stores the user decision in the USER_INPUT at addr, the input
// value of a finalized statement starts as a copy of its current value.
func (f *FormView) WriteInput(addr uint64, in fde.UserInput) error {
	u := &userInput{
		Action:    in.Action,
		DefaultID: in.DefaultID,
	}

	if st, ok := in.Statement.(*StatementView); ok && st != nil {
		kind, value := in.Value.Union()

		u.SelectedStatement = st.addr
		u.InputValue = st.data.CurrentValue
		u.InputValue.Type = uint8(kind)
		u.InputValue.Value = value
	}

	return encode(u, addr)
}

// StatementView implements fde.Statement over a
// FORM_DISPLAY_ENGINE_STATEMENT.
type StatementView struct {
	addr    uint64
	data    statementData
	raw     []byte
	options []*OptionView
}

func newStatementView(addr uint64) (s *StatementView, err error) {
	s = &StatementView{addr: addr}

	if err = decode(&s.data, addr); err != nil {
		return nil, fmt.Errorf("could not read statement, %v", err)
	}

	if s.raw, err = opCode(s.data.OpCode); err != nil {
		return nil, fmt.Errorf("could not read statement opcode, %v", err)
	}

	options, err := list(addr+optionListOffset, optionLinkOffset)

	if err != nil {
		return nil, fmt.Errorf("could not read options, %v", err)
	}

	for _, o := range options {
		opt := &optionData{}

		if err = decode(opt, o); err != nil {
			return nil, fmt.Errorf("could not read option, %v", err)
		}

		raw, err := opCode(opt.OptionOpCode)

		if err != nil {
			return nil, fmt.Errorf("could not read option opcode, %v", err)
		}

		s.options = append(s.options, &OptionView{raw: raw})
	}

	return
}

func (s *StatementView) OpCode() []byte { return s.raw }

func (s *StatementView) Value() ifr.Value {
	return ifr.DecodeValue(ifr.Kind(s.data.CurrentValue.Type), s.data.CurrentValue.Value[:])
}

func (s *StatementView) Buffer() []byte {
	v := s.data.CurrentValue

	if v.Buffer == 0 || v.BufferLen == 0 {
		return nil
	}

	buf, err := mem(v.Buffer, int(v.BufferLen))

	if err != nil {
		return nil
	}

	return buf
}

func (s *StatementView) Options() (o []fde.Option) {
	for _, opt := range s.options {
		o = append(o, opt)
	}

	return
}

// OptionView implements fde.Option.
type OptionView struct {
	raw []byte
}

func (o *OptionView) OpCode() []byte { return o.raw }

// HotKeyView implements fde.HotKey over a BROWSER_HOT_KEY.
type HotKeyView struct {
	data hotKeyData
	key  InputKey
	help string
}

func newHotKeyView(addr uint64) (h *HotKeyView, err error) {
	h = &HotKeyView{}

	if err = decode(&h.data, addr); err != nil {
		return nil, fmt.Errorf("could not read hot key, %v", err)
	}

	if err = decode(&h.key, h.data.KeyData); err != nil {
		return nil, fmt.Errorf("could not read hot key data, %v", err)
	}

	if h.data.HelpString != 0 {
		h.help, _ = readString(h.data.HelpString)
	}

	return
}

func (h *HotKeyView) Key() key.Input { return h.key.Input() }
func (h *HotKeyView) Action() uint32 { return h.data.Action }
func (h *HotKeyView) DefaultID() uint16 { return h.data.DefaultID }
func (h *HotKeyView) Help() string { return h.help }

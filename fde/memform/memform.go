// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package memform implements in-memory forms for the form display engine,
// built from IFR opcodes, for tests and the debug shell.
package memform

import (
	"fmt"

	"github.com/system76/firmware-setup/fde"
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/key"
)

// Form implements fde.Form.
type Form struct {
	ID        uint16
	HiiHandle uint64
	TitleID   ifr.StringID
	Items     []*Statement
	Highlight *Statement
	Refresh   uint64
	Keys      []*HotKey
}

func (f *Form) FormID() uint16 { return f.ID }
func (f *Form) Handle() uint64 { return f.HiiHandle }
func (f *Form) Title() ifr.StringID { return f.TitleID }
func (f *Form) RefreshEvent() uint64 { return f.Refresh }

func (f *Form) Statements() (s []fde.Statement) {
	for _, st := range f.Items {
		s = append(s, st)
	}

	return
}

func (f *Form) Highlighted() fde.Statement {
	if f.Highlight == nil {
		return nil
	}

	return f.Highlight
}

func (f *Form) HotKeys() (h []fde.HotKey) {
	for _, hk := range f.Keys {
		h = append(h, hk)
	}

	return
}

// Apply stores a finalized statement value, as done by the form browser.
func (f *Form) Apply(in fde.UserInput) bool {
	st, ok := in.Statement.(*Statement)

	if !ok || st == nil {
		return false
	}

	st.Current = in.Value

	return true
}

// Statement implements fde.Statement.
type Statement struct {
	Raw     []byte
	Current ifr.Value
	Buf     []byte
	Opts    []*Option
}

func (s *Statement) OpCode() []byte { return s.Raw }
func (s *Statement) Value() ifr.Value { return s.Current }
func (s *Statement) Buffer() []byte { return s.Buf }

func (s *Statement) Options() (o []fde.Option) {
	for _, opt := range s.Opts {
		o = append(o, opt)
	}

	return
}

// Option implements fde.Option.
type Option struct {
	Raw []byte
}

func (o *Option) OpCode() []byte { return o.Raw }

// HotKey implements fde.HotKey.
type HotKey struct {
	Input    key.Input
	Act      uint32
	Default  uint16
	HelpText string
}

func (h *HotKey) Key() key.Input { return h.Input }
func (h *HotKey) Action() uint32 { return h.Act }
func (h *HotKey) DefaultID() uint16 { return h.Default }
func (h *HotKey) Help() string { return h.HelpText }

// Strings implements fde.Strings over a single string table.
type Strings map[ifr.StringID]string

func (s Strings) String(handle uint64, id ifr.StringID) (string, error) {
	str, ok := s[id]

	if !ok {
		return "", fmt.Errorf("string %d not found", id)
	}

	return str, nil
}

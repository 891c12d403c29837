// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fde_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/system76/firmware-setup/fde"
	"github.com/system76/firmware-setup/fde/memform"
	"github.com/system76/firmware-setup/ifr"
)

func TestFlatten(t *testing.T) {
	form, s := memform.Demo()

	elements, selected := fde.Flatten(form, s)
	require.Len(t, elements, 9)
	assert.Equal(t, bootOrder, selected, "first selectable element")

	var prompts []string

	for _, e := range elements {
		prompts = append(prompts, e.Prompt)
	}

	assert.Equal(t, []string{
		"Boot",
		"Boot Order",
		"Boot Timeout",
		"Devices",
		"Wireless",
		"Camera",
		"Fan Profile",
		"Advanced",
		"Reset to Defaults",
	}, prompts)

	for _, tt := range []struct {
		i          int
		item       int
		op         ifr.OpCode
		selectable bool
		editable   bool
		list       bool
	}{
		{0, 0, ifr.OpSubtitle, false, false, false},
		{bootOrder, bootOrder, ifr.OpOrderedList, true, true, true},
		{timeout, timeout, ifr.OpNumeric, true, true, false},
		{wireless, wireless, ifr.OpCheckbox, true, true, false},
		{fan, fan, ifr.OpOneOf, true, true, false},
		{advanced, 9, ifr.OpRef, true, false, false},
		{reset, 10, ifr.OpAction, true, false, false},
	} {
		e := elements[tt.i]
		assert.Equal(t, tt.op, e.OpCode, e.Prompt)
		assert.Equal(t, tt.selectable, e.Selectable, e.Prompt)
		assert.Equal(t, tt.editable, e.Editable, e.Prompt)
		assert.Equal(t, tt.list, e.List, e.Prompt)
		assert.Equal(t, form.Items[tt.item], e.Statement, e.Prompt)
	}

	assert.Len(t, elements[bootOrder].Options, 3)
	assert.Equal(t, form.Items[bootOrder].Buf, elements[bootOrder].Buffer)

	i, ok := elements[fan].Choice()
	require.True(t, ok)
	assert.Equal(t, "Balanced", elements[fan].Options[i].Prompt)
}

func TestFlattenHighlight(t *testing.T) {
	form, s := memform.Demo()

	form.Highlight = form.Items[camera]
	_, selected := fde.Flatten(form, s)
	assert.Equal(t, camera, selected)

	form.Highlight = form.Items[0]
	_, selected = fde.Flatten(form, s)
	assert.Equal(t, bootOrder, selected, "a subtitle highlight is not selectable")

	form.Highlight = &memform.Statement{}
	_, selected = fde.Flatten(form, s)
	assert.Equal(t, bootOrder, selected, "a foreign highlight is ignored")
}

func TestFlattenEmpty(t *testing.T) {
	b := memform.New(0x4, "Empty")

	elements, selected := fde.Flatten(b.Form(), b.Strings())
	assert.Empty(t, elements)
	assert.Equal(t, fde.None, selected)
}

func TestFlattenUnresolved(t *testing.T) {
	b := memform.New(0x5, "Strings")
	sub := b.Subtitle("Hidden")
	b.Checkbox("Unnamed", "Help", true)

	s := b.Strings()

	for id, str := range s {
		if str == "Hidden" || str == "Unnamed" {
			delete(s, id)
		}
	}

	elements, selected := fde.Flatten(b.Form(), s)
	require.Len(t, elements, 1, "subtitles without prompt are skipped")
	assert.NotEqual(t, sub, elements[0].Statement)
	assert.Equal(t, 0, selected)
	assert.Empty(t, elements[0].Prompt)
	assert.Equal(t, "Help", elements[0].Help)

	elements, _ = fde.Flatten(b.Form(), nil)
	require.Len(t, elements, 1)
	assert.Empty(t, elements[0].Help)
}

func TestFlattenMalformed(t *testing.T) {
	b := memform.New(0x6, "Malformed")
	b.Subtitle("Kept")

	oneOf := b.OneOf("Choice", "", ifr.U8(0),
		memform.Choice{Prompt: "Zero", Value: ifr.U8(0)},
		memform.Choice{Prompt: "One", Value: ifr.U8(1)},
	)

	// truncated option and missing option opcode
	oneOf.Opts = append(oneOf.Opts, &memform.Option{Raw: oneOf.Opts[1].Raw[:3]}, &memform.Option{})

	form := b.Form()
	form.Items = append(form.Items,
		&memform.Statement{Raw: []byte{byte(ifr.OpCheckbox)}},
		&memform.Statement{Raw: []byte{0xff, 0x02}},
	)

	elements, _ := fde.Flatten(form, b.Strings())
	require.Len(t, elements, 2)
	assert.Equal(t, "Kept", elements[0].Prompt)
	assert.Equal(t, []fde.Choice{
		{Value: ifr.U8(0), Prompt: "Zero"},
		{Value: ifr.U8(1), Prompt: "One"},
	}, elements[1].Options)
}

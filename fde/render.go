// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fde

import (
	"fmt"
	"strings"

	"github.com/system76/firmware-setup/ui"
)

// Footer hints
const (
	hintExit       = "Esc=Exit"
	hintDiscard    = "Esc=Discard Changes"
	hintSelect     = "Enter=Select Entry"
	hintSave       = "Enter=Save Changes"
	hintMove       = "↑↓=Move Highlight"
	hintMoveDown   = "PgDn=Move Selection Down"
	hintMoveUp     = "PgUp=Move Selection Up"
	indicatorAbove = "↑"
	indicatorBelow = "↓"
)

// Style represents the form layout metrics.
type Style struct {
	MarginLR int
	MarginTB int

	TitleSize float32
	FontSize  float32
	HelpSize  float32
}

// NewStyle returns the form layout metrics for a display height.
func NewStyle(height int) Style {
	scale := ui.Scale(height)

	return Style{
		MarginLR:  8 * scale,
		MarginTB:  4 * scale,
		TitleSize: float32(20 * scale),
		FontSize:  float32(16 * scale),
		HelpSize:  float32(12 * scale),
	}
}

// Screen represents the rendering state of a form.
type Screen struct {
	Title     string
	HasTitle  bool
	FrontPage bool
	// HotKeyHelp holds the help of the form hot keys.
	HotKeyHelp []string

	Elements []Element
	State    State
}

func lines(s string) []string {
	if s == "" {
		return nil
	}

	l := strings.Split(strings.TrimSuffix(s, "\n"), "\n")

	for i := range l {
		l[i] = strings.TrimSuffix(l[i], "\r")
	}

	return l
}

type renderer struct {
	ui     *ui.Ui
	c      ui.Canvas
	style  Style
	width  int
	height int
}

// Render draws a full form frame and returns the number of elements which
// fit on screen, the first visible element is moved to keep the selection
// visible. The frame is not presented.
func Render(u *ui.Ui, c ui.Canvas, sc *Screen) (window int) {
	w, h := c.Size()

	r := &renderer{
		ui:     u,
		c:      c,
		style:  NewStyle(int(h)),
		width:  int(w),
		height: int(h),
	}

	return r.draw(sc)
}

func (r *renderer) text(s string, size float32) ui.Text {
	return r.ui.Font.Render(s, size)
}

func (r *renderer) draw(sc *Screen) (window int) {
	st := r.style
	s := sc.State

	ui.Clear(r.c, r.ui.BackgroundColor)

	y := st.MarginTB
	bottom := r.height

	var selected *Element

	if s.Selected >= 0 && s.Selected < len(sc.Elements) {
		selected = &sc.Elements[s.Selected]
	}

	if sc.HasTitle {
		t := r.text(sc.Title, st.TitleSize)
		r.ui.DrawTextBox(r.c, (r.width-t.Width())/2, y, t, false, false)
		y += t.Height() + st.MarginTB
	}

	r.ui.Separator(r.c, 0, y, r.width)
	y += st.MarginTB * 2

	bottom = r.footer(sc, selected, bottom)

	window = (bottom - y) / (int(st.FontSize) + st.MarginTB)

	// keep the selection visible
	if window > 0 && s.Selected >= s.ElementStart+window {
		sc.State.ElementStart = s.Selected - window + 1
		s = sc.State
	}

	if s.ElementStart > 0 {
		t := r.text(indicatorAbove, st.HelpSize)
		r.ui.DrawTextBox(r.c, r.width-t.Width()-st.MarginLR, y, t, false, false)
	}

	for i := s.ElementStart; i < s.ElementStart+window && i < len(sc.Elements); i++ {
		y = r.element(&sc.Elements[i], i == s.Selected, s.Editing, y)
	}

	if len(sc.Elements) > window && s.ElementStart < len(sc.Elements)-window {
		t := r.text(indicatorBelow, st.HelpSize)
		r.ui.DrawTextBox(r.c, r.width-t.Width()-st.MarginLR, bottom-t.Height()-st.MarginTB*2, t, false, false)
	}

	return
}

// footer draws the key hints and the selected element help, hints fill three
// columns from right to left. It returns the lowest y available to the form
// body.
func (r *renderer) footer(sc *Screen, selected *Element, bottom int) int {
	st := r.style
	editing := sc.State.Editing
	i := 0

	hint := func(help string) {
		t := r.text(help, st.HelpSize)

		var x int

		switch i % 3 {
		case 0:
			bottom -= t.Height() + st.MarginTB
			x = r.width*2/3 + st.MarginLR
		case 1:
			x = r.width/3 + st.MarginLR
		default:
			x = st.MarginLR
		}

		r.ui.DrawTextBox(r.c, x, bottom, t, false, false)
		i++
	}

	switch {
	case editing:
		hint(hintDiscard)
	case sc.FrontPage:
		hint("")
	default:
		hint(hintExit)
	}

	switch {
	case selected == nil:
		hint("")
	case editing:
		hint(hintSave)
	default:
		hint(hintSelect)
	}

	switch {
	case selected == nil:
		hint("")
	case !editing || len(selected.Options) > 0:
		hint(hintMove)
	}

	if editing {
		if selected != nil && selected.List {
			hint(hintMoveDown)
			hint("")
			hint(hintMoveUp)
		}
	} else {
		for _, help := range sc.HotKeyHelp {
			hint(help)
		}
	}

	bottom -= st.MarginTB * 3 / 2
	r.ui.Separator(r.c, 0, bottom, r.width)

	if selected != nil && strings.TrimSpace(selected.Help) != "" {
		t := r.text(selected.Help, st.HelpSize)
		bottom -= t.Height() + st.MarginTB
		r.ui.DrawTextBox(r.c, (r.width-t.Width())/2, bottom, t, false, false)

		bottom -= st.MarginTB * 3 / 2
		r.ui.Separator(r.c, 0, bottom, r.width)
	}

	return bottom
}

// element draws an element row and returns the y of the next row.
func (r *renderer) element(e *Element, highlighted bool, editing bool, y int) int {
	st := r.style
	h := 0

	for _, line := range lines(e.Prompt) {
		t := r.text(line, st.FontSize)
		r.ui.DrawTextBox(r.c, st.MarginLR, y+h, t, highlighted && !editing, highlighted && !editing)
		h += t.Height()
	}

	if h == 0 {
		h = int(st.FontSize)
	}

	x := r.width / 2

	switch i, ok := e.Choice(); {
	case e.List:
		y = r.options(e, highlighted && editing, x, y)
		y -= h + st.MarginTB
	case ok:
		t := r.text(e.Options[i].Prompt, st.FontSize)
		r.ui.DrawTextBox(r.c, x, y, t, true, highlighted && editing)
	case e.Editable:
		r.value(e, highlighted && editing, x, y)
	}

	return y + h + st.MarginTB
}

// options draws the boxed ordered list entries and returns the y below them.
func (r *renderer) options(e *Element, active bool, x int, y int) int {
	st := r.style
	w := 0

	texts := make([]ui.Text, len(e.Options))

	for i, o := range e.Options {
		texts[i] = r.text(o.Prompt, st.FontSize)
		w = max(w, texts[i].Width())
	}

	start := y

	for i, t := range texts {
		col := r.ui.TextColor

		if active && i == e.ListIndex {
			r.ui.DrawPrettyBox(r.c, x, y, w, t.Height(), true)
			col = r.ui.HighlightTextColor
		}

		t.Draw(r.c, int16(x), int16(y), col)
		y += t.Height() + st.MarginTB
	}

	if y > start {
		r.ui.DrawPrettyBox(r.c, x, start, w, y-start-st.MarginTB, false)
	}

	return y
}

// value draws an element value which does not match any option.
func (r *renderer) value(e *Element, highlighted bool, x int, y int) {
	var s string

	switch n, ok := e.Value.Uint64(); {
	case ok:
		s = fmt.Sprintf("%d", n)
	default:
		if b, ok := e.Value.Bool(); ok {
			r.ui.DrawCheckBox(r.c, x, y, b)
			return
		}

		s = e.Value.String()
	}

	t := r.text(s, r.style.FontSize)
	r.ui.DrawTextBox(r.c, x, y, t, true, highlighted)
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/system76/firmware-setup/key"
	"github.com/system76/firmware-setup/ui"
)

const (
	title  = "Firmware Update"
	prompt = "Type in the following code to commence firmware flashing. " +
		"The random code is a security measure to ensure you have physical access to your device."
	help = "Cancel if you did not initiate the firmware flashing process. " +
		"Firmware will not be updated when canceled. The system will reboot to lock and secure the firmware."
)

var buttons = []string{"Confirm", "Cancel"}

// ErrNoResources is returned when a prompt is run without display
// resources.
var ErrNoResources = errors.New("display resources not initialized")

// Style represents the prompt layout metrics.
type Style struct {
	MarginLR int
	MarginTB int

	FormWidth int
	FormX     int

	TitleSize float32
	FontSize  float32
}

// NewStyle returns the prompt layout metrics for a display resolution.
func NewStyle(width int, height int) Style {
	scale := ui.Scale(height)

	s := Style{
		MarginLR:  12 * scale,
		MarginTB:  4 * scale,
		TitleSize: float32(12 * scale),
		FontSize:  float32(10 * scale),
	}

	s.FormWidth = min(640*scale, width-s.MarginLR*2)
	s.FormX = (width - s.FormWidth) / 2

	return s
}

// Prompt represents the resources of a confirmation prompt.
type Prompt struct {
	UI     *ui.Ui
	Canvas ui.Canvas
	Keys   key.Source
	RNG    Random
}

// Confirm shows a random code and waits until it is typed back and
// confirmed, or the prompt is cancelled (ErrAborted).
//
// Stale key presses are discarded before the prompt is shown, the random
// code is generated before anything is drawn.
func (p *Prompt) Confirm() (err error) {
	if p.UI == nil || p.Canvas == nil || p.Keys == nil {
		return ErrNoResources
	}

	if _, err = key.Drain(p.Keys); err != nil {
		return
	}

	code, err := GenerateCode(p.RNG)

	if err != nil {
		return
	}

	c := &Challenge{Code: code}
	w, h := p.Canvas.Size()
	sc := p.layout(NewStyle(int(w), int(h)), code)

	for {
		var k key.Key

		sc.draw(c)

		if err = p.Canvas.Display(); err != nil {
			return fmt.Errorf("display error, %v", err)
		}

		if k, err = key.Read(p.Keys, true); err != nil {
			return
		}

		switch c.Handle(k) {
		case Confirmed:
			return nil
		case Cancelled:
			return ErrAborted
		}
	}
}

// screen holds the texts laid out once per prompt.
type screen struct {
	p     *Prompt
	style Style

	title   ui.Text
	texts   []ui.Text
	help    []ui.Text
	buttons []ui.Text

	// widest input
	maxInput ui.Text
}

func (p *Prompt) layout(st Style, code string) *screen {
	sc := &screen{
		p:     p,
		style: st,
		title: p.UI.Font.Render(title, st.TitleSize),
		texts: p.UI.WrapText(prompt, st.FontSize, st.FormWidth),
		help:  p.UI.WrapText(help, st.FontSize, st.FormWidth),
	}

	// blank line and code
	sc.texts = append(sc.texts, sc.text(""), sc.text(code))

	for _, b := range buttons {
		sc.buttons = append(sc.buttons, sc.text(b))
	}

	// 0 is the widest digit
	sc.maxInput = sc.text(strings.Repeat("0", len(code)))

	return sc
}

func (sc *screen) text(s string) ui.Text {
	return sc.p.UI.Font.Render(s, sc.style.FontSize)
}

func (sc *screen) draw(c *Challenge) {
	u := sc.p.UI
	cv := sc.p.Canvas
	st := sc.style

	w, h := cv.Size()
	x := st.FormX
	y := st.MarginTB
	fontSize := int(st.FontSize)

	ui.Clear(cv, u.BackgroundColor)

	// header
	sc.title.Draw(cv, int16((int(w)-sc.title.Width())/2), int16(y), u.TextColor)
	y += int(st.TitleSize) + st.MarginTB

	u.Separator(cv, x-st.MarginLR/2, y, st.FormWidth+st.MarginLR)
	y += st.MarginTB * 2

	for _, t := range sc.texts {
		t.Draw(cv, int16(x), int16(y), u.TextColor)
		y += fontSize
	}

	y += st.MarginTB

	// input box
	input := sc.text(c.Input)
	u.DrawPrettyBox(cv, x, y, sc.maxInput.Width(), fontSize, false)
	input.Draw(cv, int16(x), int16(y), u.TextColor)

	if !c.Full() {
		u.Rect(cv, x+input.Width(), y, fontSize/2, fontSize, u.TextColor)
	}

	y += fontSize + st.MarginTB

	// blank space
	y += fontSize

	for i, b := range sc.buttons {
		u.DrawTextBox(cv, x, y, b, i == c.Button, i == c.Button)
		y += fontSize + st.MarginTB
	}

	// footer
	bottom := int(h) - st.MarginTB

	for i := len(sc.help) - 1; i >= 0; i-- {
		bottom -= fontSize
		sc.help[i].Draw(cv, int16(x), int16(bottom), u.TextColor)
	}

	bottom -= st.MarginTB * 3 / 2
	u.Separator(cv, x-st.MarginLR/2, bottom, st.FormWidth+st.MarginLR)
}

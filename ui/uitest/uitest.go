// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package uitest provides a fixed width font and a recording canvas for
// testing screens drawn through the ui package.
package uitest

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/system76/firmware-setup/ui"
)

// GlyphWidth is the advance of every Font glyph.
const GlyphWidth = 8

// Font implements ui.Font with fixed width glyphs.
type Font struct{}

// Render lays out a line of text.
func (Font) Render(text string, size float32) ui.Text {
	return &Text{S: text, Size: size}
}

// Text implements ui.Text for Font.
type Text struct {
	S    string
	Size float32
}

func (t *Text) Width() int {
	return utf8.RuneCountInString(t.S) * GlyphWidth
}

func (t *Text) Height() int {
	return int(t.Size)
}

// Draw records the text when drawn on a Canvas.
func (t *Text) Draw(c ui.Canvas, x, y int16, col color.RGBA) {
	if rec, ok := c.(*Canvas); ok {
		rec.Texts = append(rec.Texts, Drawn{S: t.S, X: int(x), Y: int(y), Color: col})
	}
}

// Drawn represents a text draw operation.
type Drawn struct {
	S     string
	X     int
	Y     int
	Color color.RGBA
}

// Canvas implements ui.Canvas over a back buffer, recording text and frames.
type Canvas struct {
	Buffer *ui.Display

	// Texts holds the text drawn since the last frame.
	Texts []Drawn
	// Frames holds the text of every presented frame.
	Frames [][]Drawn
}

// NewCanvas returns a recording canvas of the argument resolution.
func NewCanvas(width int, height int) *Canvas {
	return &Canvas{
		Buffer: ui.NewDisplay(width, height, nil),
	}
}

func (c *Canvas) Size() (x, y int16) {
	return c.Buffer.Size()
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.Buffer.SetPixel(x, y, col)
}

func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	return c.Buffer.FillRectangle(x, y, width, height, col)
}

func (c *Canvas) DrawImage(img image.Image, x, y int16) {
	c.Buffer.DrawImage(img, x, y)
}

// Pixel returns the back buffer color at x, y.
func (c *Canvas) Pixel(x, y int) color.RGBA {
	return c.Buffer.Pixel(x, y)
}

// Display records a frame.
func (c *Canvas) Display() error {
	c.Frames = append(c.Frames, c.Texts)
	c.Texts = nil

	return c.Buffer.Display()
}

// Last returns the text of the last presented frame.
func (c *Canvas) Last() []Drawn {
	if len(c.Frames) == 0 {
		return nil
	}

	return c.Frames[len(c.Frames)-1]
}

// Find returns the first text of the last frame containing s.
func (c *Canvas) Find(s string) (d Drawn, ok bool) {
	for _, d = range c.Last() {
		if strings.Contains(d.S, s) {
			return d, true
		}
	}

	return Drawn{}, false
}

// Contains returns whether the last frame has a text containing s.
func (c *Canvas) Contains(s string) bool {
	_, ok := c.Find(s)
	return ok
}

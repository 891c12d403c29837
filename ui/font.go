// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ui

import (
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// Font represents a text shaping service.
type Font interface {
	// Render lays out a single line of text at a pixel size.
	Render(text string, size float32) Text
}

// Text represents a measured line of text.
type Text interface {
	Width() int
	Height() int
	// Draw draws the text with its top left corner at x, y.
	Draw(c Canvas, x, y int16, col color.RGBA)
}

// Face represents a bitmap font face with its nominal pixel size.
type Face struct {
	Size float32
	Font tinyfont.Fonter
}

// TinyFont implements Font over tinyfont bitmap faces, the face used for a
// requested size is the largest one not exceeding it.
//
// The 7-bit faces have no arrow glyphs, arrows are drawn as ASCII.
type TinyFont struct {
	// Faces must be sorted by ascending size.
	Faces []Face
}

// NewTinyFont returns a TinyFont over the FreeSans regular faces.
func NewTinyFont() *TinyFont {
	return &TinyFont{
		Faces: []Face{
			{Size: 18, Font: &freesans.Regular9pt7b},
			{Size: 24, Font: &freesans.Regular12pt7b},
			{Size: 36, Font: &freesans.Regular18pt7b},
			{Size: 48, Font: &freesans.Regular24pt7b},
		},
	}
}

var ascii = strings.NewReplacer("↑", "^", "↓", "v")

func (f *TinyFont) face(size float32) (face Face) {
	if len(f.Faces) == 0 {
		return
	}

	face = f.Faces[0]

	for _, ff := range f.Faces {
		if ff.Size > size {
			break
		}

		face = ff
	}

	return
}

// Render lays out a line of text.
func (f *TinyFont) Render(text string, size float32) Text {
	return &tinyText{
		face: f.face(size),
		text: ascii.Replace(text),
		size: size,
	}
}

type tinyText struct {
	face Face
	text string
	size float32
}

func (t *tinyText) Width() int {
	if t.face.Font == nil {
		return 0
	}

	w, _ := tinyfont.LineWidth(t.face.Font, t.text)

	return int(w)
}

func (t *tinyText) Height() int {
	return int(t.size)
}

func (t *tinyText) Draw(c Canvas, x, y int16, col color.RGBA) {
	if t.face.Font == nil || len(t.text) == 0 {
		return
	}

	// baseline at three quarters of the line
	baseline := y + int16(t.size*3/4)

	tinyfont.WriteLine(c, t.face.Font, x, baseline, t.text, col)
}

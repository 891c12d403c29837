// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package ui implements the setup screen style: palette, fonts, checkbox
// glyphs and the box drawing and text layout helpers shared by the form
// display engine and the confirmation challenge.
package ui

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/hashicorp/go-multierror"
)

//go:embed res/*.png
var res embed.FS

const (
	checkedGlyph   = "res/checkbox_checked.png"
	uncheckedGlyph = "res/checkbox_unchecked.png"
)

// rounded box corner radius, bound to the checkbox glyph corners
const radius = 4

// Palette
var (
	Background    = color.RGBA{R: 0x36, G: 0x32, B: 0x2f, A: 0xff}
	Highlight     = color.RGBA{R: 0xfb, G: 0xb8, B: 0x6c, A: 0xff}
	Outline       = color.RGBA{R: 0xfe, G: 0xff, B: 0xff, A: 0xc4}
	TextColor     = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	HighlightText = color.RGBA{R: 0x27, G: 0x27, B: 0x27, A: 0xff}
	Separator     = color.RGBA{R: 0xac, G: 0xac, B: 0xac, A: 0xff}
	Black         = color.RGBA{A: 0xff}
)

// Ui represents the setup screen resources, it is immutable once loaded.
type Ui struct {
	BackgroundColor    color.RGBA
	HighlightColor     color.RGBA
	OutlineColor       color.RGBA
	TextColor          color.RGBA
	HighlightTextColor color.RGBA
	SeparatorColor     color.RGBA

	Font Font

	checked   image.Image
	unchecked image.Image
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func loadGlyph(name string) (img image.Image, err error) {
	buf, err := res.ReadFile(name)

	if err != nil {
		return
	}

	if img, err = png.Decode(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("%s, %v", name, err)
	}

	b := img.Bounds()

	if _, ok := img.(subImager); !ok || b.Dx() < radius*2 || b.Dy() < radius*2 {
		return nil, fmt.Errorf("%s, invalid glyph", name)
	}

	return
}

// Load returns the setup screen resources using the argument font. All
// resource failures are reported together.
func Load(font Font) (u *Ui, err error) {
	var result *multierror.Error

	u = &Ui{
		BackgroundColor:    Background,
		HighlightColor:     Highlight,
		OutlineColor:       Outline,
		TextColor:          TextColor,
		HighlightTextColor: HighlightText,
		SeparatorColor:     Separator,
		Font:               font,
	}

	if font == nil {
		result = multierror.Append(result, errors.New("missing font"))
	}

	if u.checked, err = loadGlyph(checkedGlyph); err != nil {
		result = multierror.Append(result, fmt.Errorf("checkbox checked, %v", err))
	}

	if u.unchecked, err = loadGlyph(uncheckedGlyph); err != nil {
		result = multierror.Append(result, fmt.Errorf("checkbox unchecked, %v", err))
	}

	if err = result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return
}

// Scale returns the style scale factor for a display height.
func Scale(height int) int {
	switch {
	case height > 1440:
		return 4
	case height > 720:
		return 2
	default:
		return 1
	}
}

func canvasScale(c Canvas) int {
	_, h := c.Size()
	return Scale(int(h))
}

func corner(img image.Image, x, y int) image.Image {
	b := img.Bounds()
	r := image.Rect(b.Min.X+x, b.Min.Y+y, b.Min.X+x+radius, b.Min.Y+y+radius)

	return img.(subImager).SubImage(r)
}

// DrawPrettyBox draws a rounded box around the area at x, y of size w, h,
// either filled with the highlight color or outlined.
func (u *Ui) DrawPrettyBox(c Canvas, x, y, w, h int, highlighted bool) {
	scale := canvasScale(c)

	padLR := 4 * scale
	padTB := 2 * scale

	var glyph image.Image

	if highlighted {
		// center
		rect(c, x-padLR, y-padTB+radius, w+padLR*2, h+(padTB-radius)*2, u.HighlightColor)
		// top middle
		rect(c, x-padLR+radius, y-padTB, w+(padLR-radius)*2, radius, u.HighlightColor)
		// bottom middle
		rect(c, x-padLR+radius, y+h+padTB-radius, w+(padLR-radius)*2, radius, u.HighlightColor)

		glyph = u.checked
	} else {
		// top middle
		rect(c, x-padLR+radius, y-padTB, w+(padLR-radius)*2, 2, u.OutlineColor)
		// bottom middle
		rect(c, x-padLR+radius, y+h+padTB-2, w+(padLR-radius)*2, 2, u.OutlineColor)
		// left middle
		rect(c, x-padLR, y-padTB+radius, 2, h+(padTB-radius)*2, u.OutlineColor)
		// right middle
		rect(c, x+w+padLR-2, y-padTB+radius, 2, h+(padTB-radius)*2, u.OutlineColor)

		glyph = u.unchecked
	}

	gw := glyph.Bounds().Dx()
	gh := glyph.Bounds().Dy()

	left := int16(x - padLR)
	right := int16(x + w + padLR - radius)
	top := int16(y - padTB)
	bottom := int16(y + h + padTB - radius)

	c.DrawImage(corner(glyph, 0, 0), left, top)
	c.DrawImage(corner(glyph, gw-radius, 0), right, top)
	c.DrawImage(corner(glyph, 0, gh-radius), left, bottom)
	c.DrawImage(corner(glyph, gw-radius, gh-radius), right, bottom)
}

// DrawTextBox draws text at x, y, optionally within a pretty box.
func (u *Ui) DrawTextBox(c Canvas, x, y int, t Text, prettyBox bool, highlighted bool) {
	if prettyBox {
		u.DrawPrettyBox(c, x, y, t.Width(), t.Height(), highlighted)
	}

	col := u.TextColor

	if highlighted {
		col = u.HighlightTextColor
	}

	t.Draw(c, int16(x), int16(y), col)
}

// DrawCheckBox draws the checkbox glyph for a value and returns its height.
func (u *Ui) DrawCheckBox(c Canvas, x, y int, value bool) int {
	glyph := u.unchecked

	if value {
		glyph = u.checked
	}

	c.DrawImage(glyph, int16(x), int16(y))

	return glyph.Bounds().Dy()
}

// Separator draws a one pixel horizontal line.
func (u *Ui) Separator(c Canvas, x, y, w int) {
	rect(c, x, y, w, 1, u.SeparatorColor)
}

// Rect fills a rectangle.
func (u *Ui) Rect(c Canvas, x, y, w, h int, col color.RGBA) {
	rect(c, x, y, w, h, col)
}

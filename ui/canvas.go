// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ui

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Canvas represents a fixed size pixel surface.
//
// Colors carry straight (not premultiplied) components, the alpha channel
// is the opacity of the color over the existing surface.
type Canvas interface {
	drivers.Displayer

	// FillRectangle fills a rectangle, negative or zero sizes draw
	// nothing.
	FillRectangle(x, y, width, height int16, c color.RGBA) error
	// DrawImage blends an image with its bounds origin placed at x, y.
	DrawImage(img image.Image, x, y int16)
}

// Clear fills the whole canvas.
func Clear(c Canvas, col color.RGBA) {
	w, h := c.Size()
	c.FillRectangle(0, 0, w, h, col)
}

func rect(c Canvas, x, y, w, h int, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}

	c.FillRectangle(int16(x), int16(y), int16(w), int16(h), col)
}

// blend returns the result of drawing src over dst.
func blend(dst color.RGBA, src color.RGBA) color.RGBA {
	switch src.A {
	case 0xff:
		return src
	case 0x00:
		return dst
	}

	a := uint32(src.A)

	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(0xff-a)) / 0xff)
	}

	return color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: 0xff,
	}
}

// straight converts any image color to a straight alpha RGBA value.
func straight(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

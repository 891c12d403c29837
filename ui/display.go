// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ui

import (
	"image"
	"image/color"
)

// PixelSize is the size of an EFI_GRAPHICS_OUTPUT_BLT_PIXEL.
const PixelSize = 4

// Presenter represents a video output accepting full frames of
// EFI_GRAPHICS_OUTPUT_BLT_PIXEL (blue, green, red, reserved) data.
type Presenter interface {
	Present(buf []byte, width int, height int) error
}

// Display implements a back buffered Canvas, drawing operations are only
// visible after Display().
type Display struct {
	width  int
	height int
	buf    []byte
	out    Presenter
}

// NewDisplay returns a cleared back buffer for an output of the argument
// resolution.
func NewDisplay(width int, height int, out Presenter) *Display {
	return &Display{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*PixelSize),
		out:    out,
	}
}

// Size returns the display resolution.
func (d *Display) Size() (x, y int16) {
	return int16(d.width), int16(d.height)
}

func (d *Display) offset(x, y int) (off int, ok bool) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}

	return (y*d.width + x) * PixelSize, true
}

// Pixel returns the back buffer color at x, y.
func (d *Display) Pixel(x, y int) (c color.RGBA) {
	off, ok := d.offset(x, y)

	if !ok {
		return
	}

	return color.RGBA{
		R: d.buf[off+2],
		G: d.buf[off+1],
		B: d.buf[off+0],
		A: 0xff,
	}
}

func (d *Display) set(off int, c color.RGBA) {
	d.buf[off+0] = c.B
	d.buf[off+1] = c.G
	d.buf[off+2] = c.R
	d.buf[off+3] = 0
}

// SetPixel blends a color at x, y, out of bounds coordinates are ignored.
func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	off, ok := d.offset(int(x), int(y))

	if !ok {
		return
	}

	d.set(off, blend(d.Pixel(int(x), int(y)), c))
}

// FillRectangle blends a color over a rectangle clipped to the display.
func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := max(int(x), 0)
	y0 := max(int(y), 0)
	x1 := min(int(x)+int(width), d.width)
	y1 := min(int(y)+int(height), d.height)

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			off, _ := d.offset(px, py)

			if c.A == 0xff {
				d.set(off, c)
			} else {
				d.set(off, blend(d.Pixel(px, py), c))
			}
		}
	}

	return nil
}

// DrawImage blends an image with its bounds origin placed at x, y.
func (d *Display) DrawImage(img image.Image, x, y int16) {
	b := img.Bounds()

	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			d.SetPixel(x+int16(px-b.Min.X), y+int16(py-b.Min.Y), straight(img.At(px, py)))
		}
	}
}

// Display presents the back buffer on the output.
func (d *Display) Display() error {
	if d.out == nil {
		return nil
	}

	return d.out.Present(d.buf, d.width, d.height)
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ec

// defined in port_amd64.s
func in8(port uint16) uint8
func out8(port uint16, val uint8)

// LPC implements Port with x86 I/O instructions, it requires ring 0.
type LPC struct{}

func (LPC) In8(port uint16) uint8 {
	return in8(port)
}

func (LPC) Out8(port uint16, val uint8) {
	out8(port, val)
}

// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package x64

import (
	_ "unsafe"

	"github.com/system76/firmware-setup/uefi"
)

// Console represents the early UEFI services console for pre UEFI.Init()
// standard output.
var Console = &uefi.Console{
	ForceLine: true,
	In:        conIn,
	Out:       conOut,
}

//go:linkname printk runtime.printk
func printk(c byte) {
	Console.Output([]byte{c, 0x00, 0x00, 0x00})

	if c == 0x0a && Console.ForceLine { // LF
		Console.Output([]byte{0x0d, 0x00, 0x00, 0x00}) // CR
	}
}

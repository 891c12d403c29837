// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && debug

package main

import (
	"github.com/system76/firmware-setup/cmd"
	"github.com/system76/firmware-setup/shell"
	"github.com/system76/firmware-setup/uefi/x64"
)

// startShell serves the debug shell on the serial port until it is exited,
// the form browser session starts afterwards.
func startShell(s *setup) {
	cmd.Display.UI = s.ui
	cmd.Display.Canvas = s.display

	iface := &shell.Interface{
		Banner:     banner,
		ReadWriter: x64.UART0,
		VT100:      true,
	}

	iface.Start()
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package memform

import (
	"github.com/system76/firmware-setup/ifr"
	"github.com/system76/firmware-setup/key"
)

// DemoFormID is the identifier of the Demo form.
const DemoFormID = 0x1000

// F9 hot key action, BROWSER_ACTION_DEFAULT
const actionDefault = 1 << 6

// Demo returns a form with every displayed statement type.
func Demo() (*Form, Strings) {
	b := New(DemoFormID, "Firmware Setup Demo")

	b.Subtitle("Boot")

	b.OrderedList("Boot Order", "Move entries with PgUp and PgDn", 6,
		Choice{"Ubuntu", ifr.U16(0x0001)},
		Choice{"Windows Boot Manager", ifr.U16(0x0002)},
		Choice{"UEFI Shell", ifr.U16(0x0003)},
	)

	b.Numeric("Boot Timeout", "Seconds before the default entry boots", ifr.U16(2), 0, 60, 1)

	b.Subtitle("Devices")

	b.Checkbox("Wireless", "Enable the wireless card", true)
	b.Checkbox("Camera", "Enable the camera", false)

	b.OneOf("Fan Profile", "Fan curve used by the embedded controller", ifr.U8(1),
		Choice{"Quiet", ifr.U8(0)},
		Choice{"Balanced", ifr.U8(1)},
		Choice{"Performance", ifr.U8(2)},
	)

	b.Text("Firmware Version", "")

	b.Subtitle("")

	b.Ref("Advanced", "Advanced settings", DemoFormID+1)
	b.Action("Reset to Defaults", "Load the default settings")

	b.HotKey(key.Input{ScanCode: 0x13}, actionDefault, 0, "F9=Reset to Defaults")

	return b.Form(), b.Strings()
}

// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/hako/durafmt"

	"github.com/system76/firmware-setup/ec"
	"github.com/system76/firmware-setup/fde"
	"github.com/system76/firmware-setup/fde/memform"
	"github.com/system76/firmware-setup/security"
	"github.com/system76/firmware-setup/shell"
	"github.com/system76/firmware-setup/ui"
	"github.com/system76/firmware-setup/uefi"
	"github.com/system76/firmware-setup/uefi/x64"
)

// The EC command timeout in microseconds.
const ecTimeout = 100000

// Display holds the graphics resources shared with the setup application,
// display commands fail when unset.
var Display struct {
	UI     *ui.Ui
	Canvas *ui.Display
}

var bootTime = time.Now()

func init() {
	shell.Add(shell.Cmd{
		Name: "uefi",
		Help: "UEFI information",
		Fn:   uefiCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "protocol",
		Args:    1,
		Pattern: regexp.MustCompile(`^protocol ([[:xdigit:]]{8}-[[:xdigit:]]{4}-[[:xdigit:]]{4}-[[:xdigit:]]{4}-[[:xdigit:]]{12})$`),
		Syntax:  "<registry format GUID>",
		Help:    "EFI_BOOT_SERVICES.LocateProtocol()",
		Fn:      locateCmd,
	})

	shell.Add(shell.Cmd{
		Name: "memmap",
		Help: "EFI_BOOT_SERVICES.GetMemoryMap()",
		Fn:   memmapCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "reset",
		Args:    1,
		Pattern: regexp.MustCompile(`^reset(?: (cold|warm))?$`),
		Help:    "EFI_RUNTIME_SERVICES.ResetSystem()",
		Syntax:  "(cold|warm)?",
		Fn:      resetCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "halt, shutdown",
		Args:    1,
		Pattern: regexp.MustCompile(`^(halt|shutdown)$`),
		Help:    "shutdown system",
		Fn:      shutdownCmd,
	})

	shell.Add(shell.Cmd{
		Name: "uptime",
		Help: "show how long the system has been running",
		Fn:   uptimeCmd,
	})

	shell.Add(shell.Cmd{
		Name: "demo",
		Help: "display the demo form",
		Fn:   demoCmd,
	})

	shell.Add(shell.Cmd{
		Name: "confirm",
		Help: "run the physical presence confirmation",
		Fn:   confirmCmd,
	})

	shell.Add(shell.Cmd{
		Name: "ec",
		Help: "EC security state",
		Fn:   ecCmd,
	})
}

func uefiCmd(_ *shell.Interface, _ []string) (res string, err error) {
	var buf bytes.Buffer

	t := x64.UEFI.SystemTable

	vendor, err := t.Vendor()

	if err != nil {
		return
	}

	fmt.Fprintf(&buf, "Firmware Vendor ....: %s\n", vendor)
	fmt.Fprintf(&buf, "Firmware Revision ..: %#x\n", t.FirmwareRevision)
	fmt.Fprintf(&buf, "Runtime Services  ..: %#x\n", t.RuntimeServices)
	fmt.Fprintf(&buf, "Boot Services ......: %#x\n", t.BootServices)

	if gop, err := x64.UEFI.Boot.GetGraphicsOutput(); err == nil {
		if w, h, err := gop.Resolution(); err == nil {
			fmt.Fprintf(&buf, "Frame Buffer .......: %dx%d\n", w, h)
		}
	}

	fmt.Fprintf(&buf, "Configuration Tables: %#x\n", t.ConfigurationTable)

	if c, err := t.ConfigurationTables(); err == nil {
		for _, t := range c {
			fmt.Fprintf(&buf, "  %s (%#x)\n", t.GUID, t.VendorTable)
		}
	}

	return buf.String(), nil
}

func locateCmd(_ *shell.Interface, arg []string) (res string, err error) {
	addr, err := x64.UEFI.Boot.LocateProtocolString(arg[0])
	return fmt.Sprintf("%s: %#08x", arg[0], addr), err
}

func memmapCmd(_ *shell.Interface, _ []string) (res string, err error) {
	var buf bytes.Buffer
	var memoryMap *uefi.MemoryMap

	if memoryMap, err = x64.UEFI.Boot.GetMemoryMap(); err != nil {
		return
	}

	fmt.Fprintf(&buf, "Type Start            End              Pages            Attributes\n")

	for _, desc := range memoryMap.Descriptors {
		fmt.Fprintf(&buf, "%02d   %016x %016x %016x %016x\n",
			desc.Type, desc.PhysicalStart, desc.PhysicalEnd()-1, desc.NumberOfPages, desc.Attribute)
	}

	return buf.String(), err
}

func resetCmd(_ *shell.Interface, arg []string) (_ string, err error) {
	var resetType int

	switch arg[0] {
	case "cold":
		resetType = uefi.EfiResetCold
	case "warm", "":
		resetType = uefi.EfiResetWarm
	case "shutdown":
		resetType = uefi.EfiResetShutdown
	}

	log.Printf("performing system reset type %d", resetType)
	err = x64.UEFI.Runtime.ResetSystem(resetType)

	return
}

func shutdownCmd(_ *shell.Interface, _ []string) (_ string, err error) {
	return resetCmd(nil, []string{"shutdown"})
}

func uptimeCmd(_ *shell.Interface, _ []string) (string, error) {
	return durafmt.Parse(time.Since(bootTime)).String(), nil
}

func display() (*ui.Ui, *ui.Display, error) {
	if Display.UI == nil || Display.Canvas == nil {
		return nil, nil, errors.New("display not available")
	}

	return Display.UI, Display.Canvas, nil
}

func demoCmd(_ *shell.Interface, _ []string) (res string, err error) {
	var in fde.UserInput

	u, c, err := display()

	if err != nil {
		return
	}

	form, s := memform.Demo()

	engine := &fde.Engine{
		UI:      u,
		Canvas:  c,
		Keys:    x64.UEFI.Console,
		Events:  &uefi.Events{Boot: x64.UEFI.Boot, Console: x64.UEFI.Console},
		Strings: s,
	}

	defer func() {
		ui.Clear(c, ui.Black)
		c.Display()
	}()

	for {
		if in, err = engine.DisplayForm(form); err != nil {
			return
		}

		if !form.Apply(in) {
			break
		}
	}

	elements, selected := fde.Flatten(form, s)

	return fmt.Sprintf("action %#x default %d\n%s", in.Action, in.DefaultID, ElementsTable(elements, selected)), nil
}

func confirmCmd(_ *shell.Interface, _ []string) (res string, err error) {
	u, c, err := display()

	if err != nil {
		return
	}

	p := &security.Prompt{
		UI:     u,
		Canvas: c,
		Keys:   x64.UEFI.Console,
	}

	if rng, err := x64.UEFI.Boot.GetRNG(); err == nil {
		p.RNG = rng
	}

	defer func() {
		ui.Clear(c, ui.Black)
		c.Display()
	}()

	if err = p.Confirm(); err != nil {
		return
	}

	return "confirmed", nil
}

func ecCmd(_ *shell.Interface, _ []string) (res string, err error) {
	e, err := ec.New(ec.LPC{}, &uefi.Timeout{Boot: x64.UEFI.Boot, Limit: ecTimeout})

	if err != nil {
		return
	}

	state, err := e.SecurityGet()

	if err != nil {
		return
	}

	return fmt.Sprintf("chip %#04x version %d security %s", ec.ChipID(ec.LPC{}), e.Version, state), nil
}

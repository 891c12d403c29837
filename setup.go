// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago

package main

import (
	"fmt"
	"log"

	"github.com/system76/firmware-setup/ec"
	"github.com/system76/firmware-setup/fde"
	"github.com/system76/firmware-setup/security"
	"github.com/system76/firmware-setup/ui"
	"github.com/system76/firmware-setup/uefi"
)

// EC command timeout in microseconds
const ecTimeout = 100000

// setup represents the firmware setup application resources.
type setup struct {
	*uefi.Services

	ui      *ui.Ui
	display *ui.Display
	engine  *fde.Engine
}

// init loads the graphics resources, the engine is created even without
// them so that the browser receives an error for each form.
func (s *setup) init() (err error) {
	s.engine = &fde.Engine{
		Keys:   s.Console,
		Events: &uefi.Events{Boot: s.Boot, Console: s.Console},
	}

	if err = s.Boot.SetWatchdogTimer(0); err != nil {
		log.Printf("could not disable watchdog, %v", err)
	}

	if h, err := s.Boot.GetHiiString(); err == nil {
		s.engine.Strings = h
	} else {
		log.Printf("HII strings unavailable, %v", err)
	}

	gop, err := s.Boot.GetGraphicsOutput()

	if err != nil {
		return fmt.Errorf("could not locate GOP, %v", err)
	}

	width, height, err := gop.Resolution()

	if err != nil {
		return fmt.Errorf("could not read GOP mode, %v", err)
	}

	if s.ui, err = ui.Load(ui.NewTinyFont()); err != nil {
		return
	}

	s.display = ui.NewDisplay(width, height, gop)
	s.engine.UI = s.ui
	s.engine.Canvas = s.display

	log.Printf("display %dx%d", width, height)

	return
}

// install overrides the form display engine and installs the security
// protocol.
func (s *setup) install() (err error) {
	if err = s.Boot.InstallFormDisplay(s.engine); err != nil {
		return
	}

	if _, err = s.Boot.InstallSecurity(s.confirm); err != nil {
		log.Printf("could not install security protocol, %v", err)
	}

	return nil
}

// uninstall removes all handlers before the image exits.
func (s *setup) uninstall() {
	if err := s.Boot.UninstallSecurity(); err != nil {
		log.Printf("could not uninstall security protocol, %v", err)
	}

	if err := s.Boot.RestoreFormDisplay(); err != nil {
		log.Printf("could not restore form display engine, %v", err)
	}
}

// confirm handles the security protocol Run() requests.
func (s *setup) confirm() bool {
	e, err := ec.New(ec.LPC{}, &uefi.Timeout{Boot: s.Boot, Limit: ecTimeout})

	if err != nil {
		log.Printf("security: could not probe EC, %v", err)
		return false
	}

	var p *security.Prompt

	if s.display != nil {
		p = &security.Prompt{
			UI:     s.ui,
			Canvas: s.display,
			Keys:   s.Console,
		}

		if rng, err := s.Boot.GetRNG(); err == nil {
			p.RNG = rng
		}
	}

	return security.Run(e, p, s.Runtime)
}

// run displays all form sets through the form browser until the user
// leaves it.
func (s *setup) run() (err error) {
	db, err := s.Boot.GetHiiDatabase()

	if err != nil {
		return
	}

	handles, err := db.ListPackageLists(uefi.PackageForms)

	if err != nil {
		return
	}

	fb, err := s.Boot.GetFormBrowser()

	if err != nil {
		return
	}

	log.Printf("browsing %d form sets", len(handles))

	action, err := fb.SendForm(handles, 0)

	if err != nil {
		return
	}

	log.Printf("form browser action request %d", action)

	if action == uefi.ActionRequestReset {
		s.Runtime.Reboot()
	}

	return
}

// Copyright (c) WithSecure Corporation
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago

package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/system76/firmware-setup/key"
	"github.com/system76/firmware-setup/uefi/x64"
)

var banner string

func init() {
	log.SetFlags(0)

	banner = fmt.Sprintf("%s/%s (%s) • firmware setup",
		runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func main() {
	log.Print(banner)

	s := &setup{Services: x64.UEFI}

	if err := s.init(); err != nil {
		log.Printf("display unavailable, %v", err)
	}

	startShell(s)

	if err := s.install(); err != nil {
		log.Printf("could not install form display engine, %v", err)
		s.pause()
	} else if err := s.run(); err != nil {
		log.Printf("form browser error, %v", err)
		s.pause()
	}

	s.uninstall()

	if err := x64.UEFI.Boot.Exit(0); err != nil {
		log.Printf("could not exit, %v", err)
	}
}

func (s *setup) pause() {
	if s.Console == nil {
		return
	}

	log.Print("press any key to continue")
	key.Read(s.Console, true)
}

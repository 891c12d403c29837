// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package security

import (
	"log"

	"github.com/system76/firmware-setup/ec"
	"github.com/system76/firmware-setup/ui"
)

// EC represents the embedded controller security state.
type EC interface {
	SecurityGet() (ec.SecurityState, error)
	SecuritySet(state ec.SecurityState) error
}

// Platform represents the platform reset services.
type Platform interface {
	// Shutdown powers the system off, it does not return on real
	// hardware.
	Shutdown()
}

// Run requires physical presence confirmation unless the embedded
// controller is already locked, it returns whether the confirmation ran
// (false when locked or when the EC cannot be read).
//
// The EC is already unlocked when Run is invoked, therefore the prompt is
// shown in the Unlock state as well.
//
// When the prompt fails the EC is set to lock on the next boot and the
// platform is shut down.
func Run(e EC, p *Prompt, platform Platform) bool {
	state, err := e.SecurityGet()

	if err != nil {
		log.Printf("security: EC error, %v", err)
		return false
	}

	if state == ec.Lock {
		return false
	}

	if p == nil {
		p = &Prompt{}
	}

	err = p.Confirm()

	if p.Canvas != nil {
		ui.Clear(p.Canvas, ui.Black)
		p.Canvas.Display()
	}

	if err != nil {
		log.Printf("security: confirmation failed, %v", err)

		// lock on next shutdown, will power on automatically
		if err := e.SecuritySet(ec.PrepareLock); err != nil {
			log.Printf("security: EC error, %v", err)
		}

		platform.Shutdown()
	}

	return true
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"runtime/debug"
)

var EFI_FORM_BROWSER2_PROTOCOL_GUID = MustParseGUID("b9d4c360-bcfb-4f9b-9298-53c136982258")

const (
	// EFI Form Browser2 Protocol offsets
	sendForm = 0x00

	// goroutine stack reserved for firmware frames
	stackChunk  = 64 << 10
	stackChunks = 8
)

// EFI_BROWSER_ACTION_REQUEST_*
const (
	ActionRequestNone = iota
	ActionRequestReset
	ActionRequestSubmit
	ActionRequestExit
	ActionRequestFormSubmitExit
	ActionRequestFormApply
	ActionRequestFormDiscardExit
	ActionRequestReconnect
)

// FormBrowser represents an EFI Form Browser2 Protocol instance.
type FormBrowser struct {
	base uint64
}

// GetFormBrowser locates and returns the EFI Form Browser2 Protocol instance.
func (s *BootServices) GetFormBrowser() (fb *FormBrowser, err error) {
	fb = &FormBrowser{}

	if fb.base, err = s.LocateProtocol(EFI_FORM_BROWSER2_PROTOCOL_GUID); err != nil {
		return nil, err
	}

	return
}

// growStack grows the calling goroutine stack by n chunks, the stack is not
// shrunk while the garbage collector is disabled.
//
//go:noinline
func growStack(n int) byte {
	var buf [stackChunk]byte

	if n > 0 {
		return growStack(n-1) + buf[n]
	}

	return buf[0]
}

// SendForm calls EFI_FORM_BROWSER2_PROTOCOL.SendForm() on all form sets of
// the argument HII handles, it returns the browser action request.
//
// The installed form display engine is called back on the current goroutine
// stack for the whole session, so the stack is reserved in advance and the
// garbage collector is disabled until the browser returns.
func (fb *FormBrowser) SendForm(handles []uint64, formID uint16) (action uint32, err error) {
	if len(handles) == 0 {
		return 0, errors.New("no HII handles")
	}

	growStack(stackChunks)

	gc := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(gc)

	var request uint32

	status := callService(fb.base+sendForm,
		[]uint64{
			fb.base,
			ptrval(&handles[0]),
			uint64(len(handles)),
			0,
			uint64(formID),
			0,
			ptrval(&request),
		},
	)

	return request, parseStatus(status)
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package ec implements access to the System76 embedded controller through
// its shared memory (SMFI) command interface over LPC port I/O.
package ec

import (
	"errors"
	"fmt"
)

// SuperIO configuration ports
const (
	SuperIOAddr = 0x2e
	SuperIOData = 0x2f

	chipIDHigh = 0x20
	chipIDLow  = 0x21
)

// SMFI command region
const (
	CmdBase = 0xe00
	CmdSize = 0x100

	offsetCmd  = 0x00
	offsetRes  = 0x01
	offsetData = 0x02

	// DataSize is the maximum command data length.
	DataSize = CmdSize - offsetData
)

// Commands
const (
	CmdProbe       = 1
	CmdSecurityGet = 20
	CmdSecuritySet = 21
)

// Probe response
const (
	signature0 = 0x76
	signature1 = 0xec
	version    = 1
)

var (
	// ErrChipID is returned when the SuperIO chip is not a System76 EC.
	ErrChipID = errors.New("unsupported EC chip")
	// ErrSignature is returned when the EC probe signature does not match.
	ErrSignature = errors.New("invalid EC signature")
	// ErrVersion is returned for unsupported EC protocol versions.
	ErrVersion = errors.New("unsupported EC protocol version")
	// ErrBusy is returned when a previous command did not complete.
	ErrBusy = errors.New("EC busy")
	// ErrTimeout is returned when a command does not complete in time.
	ErrTimeout = errors.New("EC timeout")
	// ErrDataLength is returned for command data exceeding DataSize.
	ErrDataLength = errors.New("invalid data length")
)

// ProtocolError represents a non zero command result.
type ProtocolError uint8

func (e ProtocolError) Error() string {
	return fmt.Sprintf("EC protocol error %#x", uint8(e))
}

// SecurityState represents the EC firmware flashing lock state.
type SecurityState uint8

const (
	// Lock forbids firmware flashing.
	Lock SecurityState = iota
	// Unlock allows firmware flashing.
	Unlock
	// PrepareLock locks on the next power on.
	PrepareLock
	// PrepareUnlock unlocks on the next power on.
	PrepareUnlock
)

func (s SecurityState) String() string {
	switch s {
	case Lock:
		return "lock"
	case Unlock:
		return "unlock"
	case PrepareLock:
		return "prepare lock"
	case PrepareUnlock:
		return "prepare unlock"
	default:
		return fmt.Sprintf("unknown (%d)", uint8(s))
	}
}

// Port represents 8-bit I/O port access.
type Port interface {
	In8(port uint16) uint8
	Out8(port uint16, val uint8)
}

// Timeout represents a command completion deadline.
type Timeout interface {
	// Reset restarts the deadline.
	Reset()
	// Running returns whether the deadline is not expired, each call
	// may wait for a polling interval.
	Running() bool
}

// EC represents a System76 embedded controller.
type EC struct {
	port    Port
	timeout Timeout

	// Version is the probed protocol version.
	Version uint8
}

// ChipID returns the SuperIO chip identifier.
func ChipID(port Port) uint16 {
	read := func(reg uint8) uint16 {
		port.Out8(SuperIOAddr, reg)
		return uint16(port.In8(SuperIOData))
	}

	return read(chipIDHigh)<<8 | read(chipIDLow)
}

// New returns an EC after checking the SuperIO chip identifier and probing
// the command interface.
func New(port Port, timeout Timeout) (ec *EC, err error) {
	switch id := ChipID(port); id {
	case 0x5570, 0x8587:
	default:
		return nil, fmt.Errorf("%w %#04x", ErrChipID, id)
	}

	ec = &EC{
		port:    port,
		timeout: timeout,
	}

	if err = ec.Probe(); err != nil {
		return nil, err
	}

	return
}

func (ec *EC) read(off uint16) uint8 {
	return ec.port.In8(CmdBase + off)
}

func (ec *EC) write(off uint16, val uint8) {
	ec.port.Out8(CmdBase+off, val)
}

// Command issues a command, data is sent and replaced with the response.
func (ec *EC) Command(cmd uint8, data []byte) (err error) {
	if len(data) > DataSize {
		return ErrDataLength
	}

	if ec.read(offsetCmd) != 0 {
		return ErrBusy
	}

	for i, b := range data {
		ec.write(offsetData+uint16(i), b)
	}

	// the command byte starts the command
	ec.write(offsetCmd, cmd)

	ec.timeout.Reset()

	for ec.read(offsetCmd) != 0 {
		if !ec.timeout.Running() {
			return ErrTimeout
		}
	}

	for i := range data {
		data[i] = ec.read(offsetData + uint16(i))
	}

	if res := ec.read(offsetRes); res != 0 {
		return ProtocolError(res)
	}

	return
}

// Probe checks the EC signature and protocol version.
func (ec *EC) Probe() (err error) {
	data := make([]byte, 3)

	if err = ec.Command(CmdProbe, data); err != nil {
		return
	}

	if data[0] != signature0 || data[1] != signature1 {
		return fmt.Errorf("%w %#02x%02x", ErrSignature, data[0], data[1])
	}

	if ec.Version = data[2]; ec.Version != version {
		return fmt.Errorf("%w %d", ErrVersion, ec.Version)
	}

	return
}

// SecurityGet returns the security state.
func (ec *EC) SecurityGet() (SecurityState, error) {
	data := make([]byte, 1)

	if err := ec.Command(CmdSecurityGet, data); err != nil {
		return 0, err
	}

	return SecurityState(data[0]), nil
}

// SecuritySet sets the security state.
func (ec *EC) SecuritySet(state SecurityState) error {
	return ec.Command(CmdSecuritySet, []byte{uint8(state)})
}

// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

var EFI_RNG_PROTOCOL_GUID = MustParseGUID("3152bca5-eade-433d-862e-c01cdc291f44")

// EFI RNG Protocol offsets
const (
	getRNG = 0x08
)

// RNG represents an EFI RNG Protocol instance.
type RNG struct {
	base uint64
}

// GetRNG locates and returns the EFI RNG Protocol instance.
func (s *BootServices) GetRNG() (rng *RNG, err error) {
	rng = &RNG{}

	if rng.base, err = s.LocateProtocol(EFI_RNG_PROTOCOL_GUID); err != nil {
		return nil, err
	}

	return
}

// Read fills b with random data using the default algorithm, it implements
// the security.Random interface.
func (rng *RNG) Read(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	status := callService(rng.base+getRNG,
		[]uint64{
			rng.base,
			0,
			uint64(len(b)),
			ptrval(&b[0]),
		},
	)

	return parseStatus(status)
}

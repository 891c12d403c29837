// Copyright (c) The go-boot authors. All Rights Reserved.
// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
)

// maximum number of configuration tables read
const maxTables = 256

// ConfigurationTable represents an EFI Configuration Table entry.
type ConfigurationTable struct {
	GUID        GUID
	VendorTable uint64
}

// ConfigurationTables returns the EFI Configuration Tables of the System
// Table.
func (d *SystemTable) ConfigurationTables() (c []*ConfigurationTable, err error) {
	n := int(d.NumberOfTableEntries)

	if n == 0 || n > maxTables || d.ConfigurationTable == 0 {
		return nil, errors.New("EFI Configuration Table is invalid")
	}

	t, _ := marshalBinary(&ConfigurationTable{})
	size := len(t)

	buf, err := mem(d.ConfigurationTable, size*n)

	if err != nil {
		return
	}

	for off := 0; off < len(buf); off += size {
		t := &ConfigurationTable{}

		if err = unmarshalBinary(buf[off:off+size], t); err != nil {
			return
		}

		c = append(c, t)
	}

	return
}

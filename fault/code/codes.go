//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package code is a central repository for all scorch fault codes.
package code

import (
	"encoding/json"
	"strconv"
)

// Code represents a stable fault code.
//
// NB: New codes should always be added at the bottom of their
// respective blocks. This ensures stability of fault codes over time.
type Code int

// UnmarshalJSON implements a custom unmarshaler
// to convert an int or string code to a Code.
func (c *Code) UnmarshalJSON(data []byte) (err error) {
	var ic int
	if err = json.Unmarshal(data, &ic); err == nil {
		*c = Code(ic)
		return
	}

	var sc string
	if err = json.Unmarshal(data, &sc); err != nil {
		return
	}

	if ic, err = strconv.Atoi(sc); err == nil {
		*c = Code(ic)
	}
	return
}

const (
	// general fault codes
	Unknown Code = iota
	MissingSoftwareDependency
)

const (
	// device enumeration and geometry fault codes
	DeviceUnknown Code = iota + 100
	DeviceEnumerationFailed
	DeviceNotFound
	DeviceUnavailable
	DeviceAccessDenied
	DeviceInvalidGeometry
)

const (
	// test run fault codes
	RunUnknown Code = iota + 200
	RunNoDevicesSelected
	RunDuplicateDevice
)

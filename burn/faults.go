//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"fmt"

	"github.com/scorchtool/scorch/fault"
	"github.com/scorchtool/scorch/fault/code"
)

// FaultNoDevicesSelected is returned when a run is requested with an
// empty device list.
var FaultNoDevicesSelected = burnFault(
	code.RunNoDevicesSelected,
	"no devices were selected for testing",
	"pass one or more devices with -d, or pick at least one from the device list",
)

// FaultDuplicateDevice creates a Fault for a device appearing more
// than once in a run request. Devices are exclusively owned by their
// assigned worker, so a duplicate can never be tested.
func FaultDuplicateDevice(path string) *fault.Fault {
	return burnFault(
		code.RunDuplicateDevice,
		fmt.Sprintf("device %q was selected more than once", path),
		"remove the duplicate selection and retry",
	)
}

// FaultDeviceNotFound creates a Fault for a device path that does not
// exist or disappeared before the test could open it.
func FaultDeviceNotFound(path string) *fault.Fault {
	return burnFault(
		code.DeviceNotFound,
		fmt.Sprintf("device %q could not be found", path),
		"check that the device path is correct and the device is still attached",
	)
}

// FaultDeviceAccessDenied creates a Fault for insufficient privilege
// to open a device read-write.
func FaultDeviceAccessDenied(path string) *fault.Fault {
	return burnFault(
		code.DeviceAccessDenied,
		fmt.Sprintf("opening %q for writing was denied", path),
		"re-run with elevated privileges (e.g. sudo)",
	)
}

// FaultDeviceUnavailable creates a Fault for a device that exists but
// could not be opened or queried.
func FaultDeviceUnavailable(path, reason string) *fault.Fault {
	return burnFault(
		code.DeviceUnavailable,
		fmt.Sprintf("device %q is unavailable: %s", path, reason),
		"check that the device is attached and not in use by another process",
	)
}

// FaultInvalidGeometry creates a Fault for a device whose resolved
// size or block size cannot be tested.
func FaultInvalidGeometry(path string, geo Geometry) *fault.Fault {
	return burnFault(
		code.DeviceInvalidGeometry,
		fmt.Sprintf("device %q reported unusable geometry (size %d, block size %d)",
			path, geo.TotalBytes, geo.BlockBytes),
		"check that the device is fully initialized and reports a nonzero size",
	)
}

func burnFault(c code.Code, desc, res string) *fault.Fault {
	return &fault.Fault{
		Domain:      "burn",
		Code:        c,
		Description: desc,
		Resolution:  res,
	}
}

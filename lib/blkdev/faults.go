//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package blkdev

import (
	"fmt"

	"github.com/scorchtool/scorch/fault"
	"github.com/scorchtool/scorch/fault/code"
)

// FaultEnumerationFailed creates a Fault for a device enumeration that
// could not complete at all.
func FaultEnumerationFailed(reason string) *fault.Fault {
	return blkdevFault(
		code.DeviceEnumerationFailed,
		fmt.Sprintf("block device enumeration failed: %s", reason),
		"check that lsblk is installed and runnable by the current user",
	)
}

// FaultDeviceUnavailable creates a Fault for a device that cannot be
// queried.
func FaultDeviceUnavailable(path, reason string) *fault.Fault {
	return blkdevFault(
		code.DeviceUnavailable,
		fmt.Sprintf("device %q could not be queried: %s", path, reason),
		"check that the device exists and blockdev is runnable by the current user",
	)
}

func blkdevFault(c code.Code, desc, res string) *fault.Fault {
	return &fault.Fault{
		Domain:      "blkdev",
		Code:        c,
		Description: desc,
		Resolution:  res,
	}
}

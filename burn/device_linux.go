//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"os"

	"golang.org/x/sys/unix"
)

// DirectOpen opens a block device read-write with O_DIRECT so that
// reads and writes bypass the page cache, and O_EXCL so that a device
// held by another opener (mounted filesystem, another tester) is
// refused rather than clobbered.
func DirectOpen(path string) (Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_DIRECT|unix.O_EXCL, 0)
	if err != nil {
		switch err {
		case unix.ENOENT:
			return nil, FaultDeviceNotFound(path)
		case unix.EACCES, unix.EPERM:
			return nil, FaultDeviceAccessDenied(path)
		}
		return nil, FaultDeviceUnavailable(path, err.Error())
	}

	return os.NewFile(uintptr(fd), path), nil
}

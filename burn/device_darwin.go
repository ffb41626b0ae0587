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

// DirectOpen opens a block device read-write with caching disabled.
// Darwin has no O_DIRECT; F_NOCACHE on the open descriptor gives the
// same read-what-was-persisted semantics.
func DirectOpen(path string) (Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_EXLOCK, 0)
	if err != nil {
		switch err {
		case unix.ENOENT:
			return nil, FaultDeviceNotFound(path)
		case unix.EACCES, unix.EPERM:
			return nil, FaultDeviceAccessDenied(path)
		}
		return nil, FaultDeviceUnavailable(path, err.Error())
	}

	if _, err := unix.FcntlInt(uintptr(fd), unix.F_NOCACHE, 1); err != nil {
		unix.Close(fd)
		return nil, FaultDeviceUnavailable(path, err.Error())
	}

	return os.NewFile(uintptr(fd), path), nil
}

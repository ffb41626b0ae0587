//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package blkdev

import (
	"fmt"
	"strings"
)

const cmdZfsListVolumes = "%s list -Hp -o name -t volume"

// ResolveVolume maps a zvol device node (e.g. /dev/zd0) back to its
// ZFS pool/volume name by walking the /dev/zvol symlinks for each
// volume the zfs tool reports. The zfs backend being absent is not an
// error; callers fall back to the raw device name.
func (p *Provider) ResolveVolume(path string) (string, error) {
	if !strings.HasPrefix(FriendlyName(path), "zd") {
		return "", nil
	}

	tool, err := p.findTool(p.zfsPath, "zfs")
	if err != nil {
		return "", nil
	}

	out, err := p.runCmd(fmt.Sprintf(cmdZfsListVolumes, tool))
	if err != nil {
		p.log.Debugf("zfs volume listing failed: %s", err)
		return "", nil
	}

	for _, volume := range strings.Fields(out) {
		target, err := p.evalLink("/dev/zvol/" + volume)
		if err != nil {
			continue
		}
		if target == path {
			return volume, nil
		}
	}

	return "", nil
}

// VolumeDevice is the inverse mapping: given a pool/volume name,
// return the zvol device node it is exposed as.
func (p *Provider) VolumeDevice(volume string) (string, error) {
	target, err := p.evalLink("/dev/zvol/" + volume)
	if err != nil {
		return "", FaultDeviceUnavailable(volume, err.Error())
	}
	return target, nil
}

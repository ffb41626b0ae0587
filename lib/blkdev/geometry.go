//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package blkdev

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scorchtool/scorch/burn"
)

const (
	cmdBlockdevSize    = "%s --getsize64 %s"
	cmdBlockdevPhysSec = "%s --getpbsz %s"
)

// Resolve queries a device's total size and physical block size via
// blockdev. It implements burn.GeometryResolver. Resolution has no
// side effects and is safe to repeat; any failure means the device
// cannot be tested, never that a default geometry applies.
func (p *Provider) Resolve(path string) (burn.Geometry, error) {
	tool, err := p.findTool(p.blockdevPath, "blockdev")
	if err != nil {
		return burn.Geometry{}, FaultDeviceUnavailable(path, "blockdev tool not found")
	}

	total, err := p.blockdevQuery(fmt.Sprintf(cmdBlockdevSize, tool, path))
	if err != nil {
		return burn.Geometry{}, FaultDeviceUnavailable(path, err.Error())
	}

	blockSize, err := p.blockdevQuery(fmt.Sprintf(cmdBlockdevPhysSec, tool, path))
	if err != nil {
		return burn.Geometry{}, FaultDeviceUnavailable(path, err.Error())
	}

	geo := burn.Geometry{
		TotalBytes: total,
		BlockBytes: blockSize,
	}
	p.log.Debugf("%s: %d bytes, %d-byte physical blocks (%d blocks)",
		path, geo.TotalBytes, geo.BlockBytes, geo.BlockCount())

	return geo, nil
}

func (p *Provider) blockdevQuery(cmd string) (uint64, error) {
	out, err := p.runCmd(cmd)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(out), 10, 64)
}

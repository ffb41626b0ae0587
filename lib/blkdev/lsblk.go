//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package blkdev

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const cmdLsblk = "%s --bytes --json -o name,path,type,size,vendor,model"

type (
	// lsblkTree is the raw JSON document emitted by lsblk --json.
	lsblkTree struct {
		Blockdevices []lsblkDevice `json:"blockdevices"`
	}

	lsblkDevice struct {
		Name   string      `json:"name"`
		Path   string      `json:"path"`
		Type   string      `json:"type"`
		Size   interface{} `json:"size"` // number with --bytes, string otherwise
		Vendor string      `json:"vendor"`
		Model  string      `json:"model"`
	}
)

// sizeBytes coerces lsblk's size field, which is a JSON number when
// --bytes is understood and a quoted string on older util-linux.
func (d *lsblkDevice) sizeBytes() (uint64, error) {
	switch v := d.Size.(type) {
	case nil:
		return 0, nil
	case float64:
		return uint64(v), nil
	case string:
		return strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	default:
		return 0, errors.Errorf("unparseable lsblk size %v (%T)", v, v)
	}
}

type (
	// ScanRequest defines the parameters for a Scan operation.
	ScanRequest struct {
		// SelectDevices marks matching devices as Selected in the
		// response. Matching is on the trailing path component, so
		// both "/dev/sda" and "sda" select sda.
		SelectDevices []string
	}

	// ScanResponse contains the devices found by a Scan operation.
	ScanResponse struct {
		Devices []Device
	}
)

// Scan enumerates the disk-type block devices visible to lsblk. A
// missing lsblk binary yields an empty response rather than an error;
// a failing lsblk invocation is an enumeration fault.
func (p *Provider) Scan(req ScanRequest) (*ScanResponse, error) {
	tool, err := p.findTool(p.lsblkPath, "lsblk")
	if err != nil {
		p.log.Noticef("lsblk not found; no devices can be enumerated: %s", err)
		return &ScanResponse{}, nil
	}

	out, err := p.runCmd(fmt.Sprintf(cmdLsblk, tool))
	if err != nil {
		return nil, FaultEnumerationFailed(err.Error())
	}

	var tree lsblkTree
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		return nil, FaultEnumerationFailed(errors.Wrap(err, "parsing lsblk output").Error())
	}

	selected := make(map[string]struct{}, len(req.SelectDevices))
	for _, sel := range req.SelectDevices {
		selected[FriendlyName(sel)] = struct{}{}
	}

	resp := new(ScanResponse)
	for _, raw := range tree.Blockdevices {
		if raw.Type != "disk" {
			continue
		}

		size, err := raw.sizeBytes()
		if err != nil {
			p.log.Noticef("skipping %s: %s", raw.Name, err)
			continue
		}

		path := raw.Path
		if path == "" {
			path = "/dev/" + raw.Name
		}

		dev := Device{
			Name:      raw.Name,
			Path:      path,
			Type:      raw.Type,
			SizeBytes: size,
			Vendor:    strings.TrimSpace(raw.Vendor),
			Model:     strings.TrimSpace(raw.Model),
		}
		if _, ok := selected[raw.Name]; ok {
			dev.Selected = true
		}
		if vol, err := p.ResolveVolume(path); err == nil && vol != "" {
			dev.Volume = vol
		}

		resp.Devices = append(resp.Devices, dev)
	}

	return resp, nil
}

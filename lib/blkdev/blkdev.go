//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package blkdev wraps the system tools used to discover block devices
// and query their geometry: lsblk for enumeration, blockdev for sizes,
// and (when present) zfs for mapping zvol device nodes back to their
// pool/volume names. All tool invocations go through an injectable
// runner so the package is fully testable without hardware.
package blkdev

import (
	"os/exec"
	"path/filepath"

	"github.com/scorchtool/scorch/logging"
)

type (
	// Device describes one enumerated block device.
	Device struct {
		Name      string
		Path      string
		Type      string
		SizeBytes uint64
		Vendor    string
		Model     string
		// Volume is the human-meaningful volume-manager name for
		// virtual devices (e.g. a ZFS pool/volume for a zd node);
		// empty when the device is a plain disk or no volume manager
		// backend is available.
		Volume string
		// Selected marks devices matching a caller-supplied
		// preselection filter.
		Selected bool
	}

	// Provider enumerates block devices and resolves their geometry.
	Provider struct {
		log      logging.Logger
		runCmd   runCmdFn
		lookPath lookPathFn
		evalLink func(string) (string, error)

		lsblkPath    string
		blockdevPath string
		zfsPath      string
	}
)

// PathConfig overrides the default locations of the wrapped tools.
// Zero values mean "resolve from PATH".
type PathConfig struct {
	Lsblk    string `yaml:"lsblk,omitempty"`
	Blockdev string `yaml:"blockdev,omitempty"`
	Zfs      string `yaml:"zfs,omitempty"`
}

// DefaultProvider returns an initialized Provider using the real
// system tools.
func DefaultProvider(log logging.Logger) *Provider {
	return NewProvider(log, PathConfig{})
}

// NewProvider returns an initialized Provider with the given tool
// locations.
func NewProvider(log logging.Logger, paths PathConfig) *Provider {
	return &Provider{
		log:          log,
		runCmd:       run,
		lookPath:     exec.LookPath,
		evalLink:     filepath.EvalSymlinks,
		lsblkPath:    paths.Lsblk,
		blockdevPath: paths.Blockdev,
		zfsPath:      paths.Zfs,
	}
}

// findTool resolves a tool path, preferring a configured override.
func (p *Provider) findTool(configured, name string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return p.lookPath(name)
}

// FriendlyName returns the short name a device is displayed under,
// i.e. the final path component.
func FriendlyName(path string) string {
	return filepath.Base(path)
}

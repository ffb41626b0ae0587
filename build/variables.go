//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package build provides an importable repository of variables set at
// build time.
package build

var (
	// ConfigDir should be set via linker flag using the value of CONF_DIR.
	ConfigDir string = "/etc/scorch"
	// Version should be set via linker flag using the value of SCORCH_VERSION.
	Version string = "0.2.0"
	// Revision should be set via linker flag to the VCS revision.
	Revision string
	// DirtyBuild should be set via linker flag if the working tree was
	// dirty at build time.
	DirtyBuild bool
	// ToolName defines a consistent name for the tester binary.
	ToolName = "scorch"
)

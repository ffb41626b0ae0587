//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package build

import (
	"fmt"
	"strings"
)

func revString(version string) string {
	revParts := []string{version}
	if Revision != "" {
		revParts = append(revParts, fmt.Sprintf("g%7s", Revision)[0:7])
		if DirtyBuild {
			revParts = append(revParts, "dirty")
		}
	}
	return strings.Join(revParts, "-")
}

// String returns a string containing the name and version of the
// binary, plus the revision for non-release builds.
func String(name string) string {
	return fmt.Sprintf("%s version %s", name, revString(Version))
}

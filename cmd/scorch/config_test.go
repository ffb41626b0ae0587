//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/scorchtool/scorch/common/test"
	"github.com/scorchtool/scorch/lib/blkdev"
)

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), defaultConfigFile)
	if err := os.WriteFile(cfgPath, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func TestScorch_LoadConfig(t *testing.T) {
	for name, tc := range map[string]struct {
		contents string
		expCfg   *Config
		expErr   error
	}{
		"empty file keeps defaults": {
			expCfg: defaultConfig(),
		},
		"tool paths and poll interval": {
			contents: `
tools:
  lsblk: /opt/bin/lsblk
  blockdev: /opt/bin/blockdev
poll_interval_ms: 250
`,
			expCfg: &Config{
				Tools: blkdev.PathConfig{
					Lsblk:    "/opt/bin/lsblk",
					Blockdev: "/opt/bin/blockdev",
				},
				PollIntervalMS: 250,
			},
		},
		"non-positive interval reset to default": {
			contents: "poll_interval_ms: -5",
			expCfg:   defaultConfig(),
		},
		"unknown key rejected": {
			contents: "pool_interval_ms: 100",
			expErr:   errors.New("parsing config"),
		},
		"malformed yaml rejected": {
			contents: "tools: [",
			expErr:   errors.New("parsing config"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfgPath := writeTestConfig(t, tc.contents)

			cfg, err := LoadConfig(cfgPath)
			test.CmpErr(t, tc.expErr, err)
			if tc.expErr != nil {
				return
			}

			test.AssertEqual(t, tc.expCfg, cfg, "loaded config")
		})
	}
}

func TestScorch_LoadConfigMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), defaultConfigFile)

	// An explicitly requested file must exist.
	_, err := LoadConfig(missing)
	test.CmpErr(t, errors.New("reading config"), err)
}

func TestScorch_PollInterval(t *testing.T) {
	cfg := defaultConfig()
	test.AssertEqual(t, 100*time.Millisecond, cfg.PollInterval(), "default poll interval")

	cfg.PollIntervalMS = 250
	test.AssertEqual(t, 250*time.Millisecond, cfg.PollInterval(), "configured poll interval")
}

//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/scorchtool/scorch/build"
	"github.com/scorchtool/scorch/lib/blkdev"
)

const defaultConfigFile = "scorch.yml"

// Config holds the optional tool configuration. Every field has a
// working default; a missing config file is not an error.
type Config struct {
	// Tools overrides the locations of the wrapped system tools.
	Tools blkdev.PathConfig `yaml:"tools"`
	// PollIntervalMS sets the status poll cadence in milliseconds.
	PollIntervalMS int `yaml:"poll_interval_ms"`
}

// PollInterval returns the configured poll cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

func defaultConfig() *Config {
	return &Config{
		PollIntervalMS: 100,
	}
}

// LoadConfig reads the YAML config at cfgPath, falling back to the
// default location and then to built-in defaults if no file exists.
func LoadConfig(cfgPath string) (*Config, error) {
	cfg := defaultConfig()

	explicit := cfgPath != ""
	if !explicit {
		cfgPath = path.Join(build.ConfigDir, defaultConfigFile)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config at %q", cfgPath)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config at %q", cfgPath)
	}
	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = defaultConfig().PollIntervalMS
	}

	return cfg, nil
}

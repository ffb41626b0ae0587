//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/scorchtool/scorch/build"
	"github.com/scorchtool/scorch/fault"
	"github.com/scorchtool/scorch/logging"
)

type cliOptions struct {
	Debug      bool       `short:"d" long:"debug" description:"Enable debug output"`
	JSONLogs   bool       `short:"J" long:"json-logging" description:"Enable JSON-formatted log output"`
	ConfigPath string     `short:"o" long:"config-path" description:"Config file path"`
	List       listCmd    `command:"list" alias:"l" description:"List block devices available for testing"`
	Test       testCmd    `command:"test" alias:"t" description:"Destructively test block devices with write/verify patterns"`
	Version    versionCmd `command:"version" description:"Print scorch version"`
}

type cmdLogger interface {
	setLog(*logging.LeveledLogger)
}

type logCmd struct {
	log *logging.LeveledLogger
}

func (c *logCmd) setLog(log *logging.LeveledLogger) {
	c.log = log
}

type cmdConfigSetter interface {
	setConfig(*Config)
}

type cfgCmd struct {
	config *Config
}

func (c *cfgCmd) setConfig(cfg *Config) {
	c.config = cfg
}

type versionCmd struct{}

func (cmd *versionCmd) Execute(_ []string) error {
	fmt.Println(build.String(build.ToolName))
	os.Exit(0)
	return nil
}

func exitWithError(log logging.Logger, err error) {
	log.Debugf("%+v", err)
	log.Errorf("%v", err)
	if fault.HasResolution(err) {
		log.Error(fault.ShowResolutionFor(err))
	}
	os.Exit(1)
}

func parseOpts(args []string, opts *cliOptions, log *logging.LeveledLogger) error {
	p := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	p.SubcommandsOptional = false
	p.CommandHandler = func(cmd flags.Commander, cmdArgs []string) error {
		if cmd == nil {
			return nil
		}
		if len(cmdArgs) > 0 {
			return errors.Errorf("unexpected commandline arguments: %v", cmdArgs)
		}

		if opts.Debug {
			log.SetLevel(logging.LogLevelDebug)
			log.Debug("debug output enabled")
		}
		if opts.JSONLogs {
			log.WithJSONOutput()
		}

		if logCmd, ok := cmd.(cmdLogger); ok {
			logCmd.setLog(log)
		}

		if cfgCmd, ok := cmd.(cmdConfigSetter); ok {
			cfg, err := LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			cfgCmd.setConfig(cfg)
		}

		return cmd.Execute(cmdArgs)
	}

	_, err := p.ParseArgs(args)
	return err
}

func main() {
	log := logging.NewCommandLineLogger()
	var opts cliOptions

	if err := parseOpts(os.Args[1:], &opts, log); err != nil {
		if fe, ok := errors.Cause(err).(*flags.Error); ok && fe.Type == flags.ErrHelp {
			fmt.Println(fe.Error())
			os.Exit(0)
		}
		exitWithError(log, err)
	}
}

//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"context"
	"fmt"

	"github.com/scorchtool/scorch/build"
	"github.com/scorchtool/scorch/burn"
	"github.com/scorchtool/scorch/lib/blkdev"
	"github.com/scorchtool/scorch/logging"
	"github.com/scorchtool/scorch/tui"
)

type testCmd struct {
	logCmd
	cfgCmd

	Devices []string `short:"d" long:"device" description:"Device to test (repeat for multiple devices)"`
	NoUI    bool     `long:"no-ui" description:"Disable the live progress display and log status transitions instead"`
}

// displayNames maps each selected device path to the name it should be
// shown under, preferring a volume-manager name when one resolved.
func displayNames(devices []blkdev.Device) map[string]string {
	names := make(map[string]string, len(devices))
	for _, dev := range devices {
		name := dev.Name
		if dev.Volume != "" {
			name = fmt.Sprintf("%s (%s)", dev.Name, dev.Volume)
		}
		names[dev.Path] = name
	}
	return names
}

func (cmd *testCmd) Execute(_ []string) error {
	provider := blkdev.NewProvider(cmd.log, cmd.config.Tools)

	resp, err := provider.Scan(blkdev.ScanRequest{SelectDevices: cmd.Devices})
	if err != nil {
		return err
	}

	paths := cmd.Devices
	if len(paths) == 0 {
		if len(resp.Devices) == 0 {
			return burn.FaultNoDevicesSelected
		}
		picked, err := tui.PickDevices(resp.Devices)
		if err != nil {
			return burn.FaultNoDevicesSelected
		}
		paths = picked
	}

	names := displayNames(resp.Devices)
	orch := burn.NewOrchestrator(cmd.log, provider).
		WithPollInterval(cmd.config.PollInterval())

	var results []burn.Result
	if cmd.NoUI {
		orch.WithObserver(newLogObserver(cmd.log, names))
		results, err = orch.Run(context.Background(), paths)
	} else {
		ui := tui.NewProgressUI(build.String(build.ToolName), names)
		orch.WithObserver(ui.Observer())

		type runOutcome struct {
			results []burn.Result
			err     error
		}
		outC := make(chan runOutcome, 1)
		go func() {
			res, err := orch.Run(context.Background(), paths)
			outC <- runOutcome{res, err}
			// A run that fails validation never publishes a snapshot,
			// so the view would otherwise block forever.
			ui.Quit()
		}()

		if uiErr := ui.Run(); uiErr != nil {
			cmd.log.Errorf("progress display failed: %s", uiErr)
		}
		out := <-outC
		results, err = out.results, out.err
	}
	if err != nil {
		return err
	}

	// Individual device failures are reported, not escalated; the
	// process only fails when no test could be run at all.
	for _, res := range results {
		name := names[res.Device]
		if name == "" {
			name = blkdev.FriendlyName(res.Device)
		}
		switch {
		case res.Err != nil:
			cmd.log.Infof("%-20s %s (%s)", name, res.Status, res.Err)
		case res.Mismatches > 0:
			cmd.log.Infof("%-20s %s (%d mismatched blocks)", name, res.Status, res.Mismatches)
		default:
			cmd.log.Infof("%-20s %s", name, res.Status)
		}
	}

	return nil
}

// newLogObserver returns an observer that logs each slot's status
// transitions, for environments without a usable terminal UI.
func newLogObserver(log logging.Logger, names map[string]string) burn.Observer {
	last := make(map[int]burn.Status)
	return func(states []burn.SlotState) {
		for _, st := range states {
			if st.Status == last[st.Slot] {
				continue
			}
			last[st.Slot] = st.Status

			name := names[st.Device]
			if name == "" {
				name = blkdev.FriendlyName(st.Device)
			}
			log.Infof("%-20s %s", name, st.Status)
		}
	}
}

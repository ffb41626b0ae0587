//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"github.com/dustin/go-humanize"

	"github.com/scorchtool/scorch/lib/blkdev"
	"github.com/scorchtool/scorch/lib/txtfmt"
)

type listCmd struct {
	logCmd
	cfgCmd
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func (cmd *listCmd) Execute(_ []string) error {
	provider := blkdev.NewProvider(cmd.log, cmd.config.Tools)

	resp, err := provider.Scan(blkdev.ScanRequest{})
	if err != nil {
		return err
	}
	if len(resp.Devices) == 0 {
		cmd.log.Info("no block devices found")
		return nil
	}

	table := txtfmt.NewTableFormatter("NAME", "SIZE", "VENDOR", "MODEL", "VOLUME")
	rows := make([]txtfmt.TableRow, 0, len(resp.Devices))
	for _, dev := range resp.Devices {
		rows = append(rows, txtfmt.TableRow{
			"NAME":   dev.Name,
			"SIZE":   humanize.IBytes(dev.SizeBytes),
			"VENDOR": orUnknown(dev.Vendor),
			"MODEL":  orUnknown(dev.Model),
			"VOLUME": dev.Volume,
		})
	}
	cmd.log.Info(table.Format(rows))

	return nil
}

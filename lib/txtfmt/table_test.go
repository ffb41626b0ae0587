//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package txtfmt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTxtfmt_TableFormat(t *testing.T) {
	for name, tc := range map[string]struct {
		titles   []string
		rows     []TableRow
		expLines []string
	}{
		"no titles": {
			rows:     []TableRow{{"NAME": "sda"}},
			expLines: []string{""},
		},
		"header only": {
			titles:   []string{"NAME", "SIZE"},
			expLines: []string{"NAME  SIZE  "},
		},
		"aligned rows": {
			titles: []string{"NAME", "SIZE"},
			rows: []TableRow{
				{"NAME": "sda", "SIZE": "3.6 TiB"},
				{"NAME": "zd0", "SIZE": "10 GiB"},
			},
			expLines: []string{
				"NAME  SIZE     ",
				"sda   3.6 TiB  ",
				"zd0   10 GiB   ",
			},
		},
		"missing cells render as dash": {
			titles: []string{"NAME", "VENDOR"},
			rows: []TableRow{
				{"NAME": "sda", "VENDOR": "ATA"},
				{"NAME": "zd0"},
				{"NAME": "sdb", "VENDOR": ""},
			},
			expLines: []string{
				"NAME  VENDOR  ",
				"sda   ATA     ",
				"zd0   -       ",
				"sdb   -       ",
			},
		},
		"extra cells ignored": {
			titles: []string{"NAME"},
			rows: []TableRow{
				{"NAME": "sda", "SIZE": "3.6 TiB"},
			},
			expLines: []string{
				"NAME  ",
				"sda   ",
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			out := NewTableFormatter(tc.titles...).Format(tc.rows)

			if diff := cmp.Diff(strings.Join(tc.expLines, "\n"), out); diff != "" {
				t.Fatalf("unexpected output (-want, +got):\n%s", diff)
			}
		})
	}
}

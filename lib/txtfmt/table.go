//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package txtfmt provides helpers for aligned plain-text table output.
package txtfmt

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

// TableRow maps column titles to cell values for a single row.
type TableRow map[string]string

// TableFormatter renders rows as an aligned table with a title header.
// Only the configured columns are rendered, in order; cells missing
// from a row render as "-".
type TableFormatter struct {
	titles []string
	out    bytes.Buffer
	writer *tabwriter.Writer
}

// NewTableFormatter creates a TableFormatter with the given ordered
// column titles.
func NewTableFormatter(titles ...string) *TableFormatter {
	t := &TableFormatter{titles: titles}
	t.writer = tabwriter.NewWriter(&t.out, 0, 0, 2, ' ', 0)
	return t
}

// Format renders the table rows, preceded by the header, and returns
// the result without a trailing newline.
func (t *TableFormatter) Format(rows []TableRow) string {
	if len(t.titles) == 0 {
		return ""
	}

	for _, title := range t.titles {
		fmt.Fprintf(t.writer, "%s\t", title)
	}
	fmt.Fprint(t.writer, "\n")

	for _, row := range rows {
		for _, title := range t.titles {
			value, found := row[title]
			if !found || value == "" {
				value = "-"
			}
			fmt.Fprintf(t.writer, "%s\t", value)
		}
		fmt.Fprint(t.writer, "\n")
	}

	t.writer.Flush()
	return strings.TrimSuffix(t.out.String(), "\n")
}

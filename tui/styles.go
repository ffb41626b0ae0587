//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package tui renders the interactive device picker and the live
// progress table on top of bubbletea. The core never depends on this
// package; it consumes orchestrator snapshots like any other observer.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	deviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func statusStyle(terminalPass, terminalFail bool) lipgloss.Style {
	switch {
	case terminalPass:
		return passStyle
	case terminalFail:
		return failStyle
	default:
		return deviceStyle
	}
}

//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/scorchtool/scorch/burn"
	"github.com/scorchtool/scorch/lib/blkdev"
)

const barWidth = 30

type snapshotMsg []burn.SlotState

type progressModel struct {
	header  string
	names   map[string]string
	rows    []burn.SlotState
	started time.Time
	done    bool
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.rows = msg
		m.done = allTerminal(msg)
		if m.done {
			return m, tea.Quit
		}
	case tea.KeyMsg:
		// Launched workers cannot be aborted; the view stays up until
		// every device reaches a terminal status.
	}

	return m, nil
}

func allTerminal(rows []burn.SlotState) bool {
	for _, row := range rows {
		if !row.Status.IsTerminal() {
			return false
		}
	}
	return len(rows) > 0
}

func renderBar(progress int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * barWidth / 100
	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m progressModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.header))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" started %s", m.started.Format(time.Stamp))))
	sb.WriteString("\n\n")

	for _, row := range m.rows {
		name := m.names[row.Device]
		if name == "" {
			name = blkdev.FriendlyName(row.Device)
		}

		style := statusStyle(row.Status == burn.StatusPassed, row.Status == burn.StatusFailed)
		sb.WriteString(fmt.Sprintf(" %-20s %s %3d%%  %s\n",
			name, renderBar(row.Progress), row.Progress, style.Render(row.Status.String())))
	}

	if m.done {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render(" all devices finished"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// ProgressUI is a live progress table fed by orchestrator snapshots.
type ProgressUI struct {
	prog *tea.Program
}

// NewProgressUI builds the live view. names maps device paths to the
// display names enumeration resolved for them (volume names for
// zvols); missing entries fall back to the path's final component.
func NewProgressUI(header string, names map[string]string, opts ...tea.ProgramOption) *ProgressUI {
	model := progressModel{
		header:  header,
		names:   names,
		started: time.Now(),
	}
	return &ProgressUI{
		prog: tea.NewProgram(model, opts...),
	}
}

// Observer returns the snapshot callback to register with the
// orchestrator. It is safe to call from the orchestrator's poll
// goroutine.
func (ui *ProgressUI) Observer() burn.Observer {
	return func(states []burn.SlotState) {
		ui.prog.Send(snapshotMsg(states))
	}
}

// Run blocks rendering until every device reaches a terminal status or
// Quit is called.
func (ui *ProgressUI) Run() error {
	if _, err := ui.prog.Run(); err != nil {
		return errors.Wrap(err, "progress view")
	}
	return nil
}

// Quit dismisses the view. The view normally dismisses itself on the
// first all-terminal snapshot; Quit covers runs that fail before any
// snapshot is published, so Run never blocks past the run's end. Safe
// to call from any goroutine, at any time.
func (ui *ProgressUI) Quit() {
	ui.prog.Quit()
}

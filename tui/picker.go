//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/scorchtool/scorch/lib/blkdev"
)

// ErrNoSelection is returned when the picker is dismissed without any
// device chosen.
var ErrNoSelection = errors.New("no devices selected")

type pickerModel struct {
	devices []blkdev.Device
	cursor  int
	chosen  map[int]bool
	confirm bool
	abort   bool
}

func newPickerModel(devices []blkdev.Device) pickerModel {
	chosen := make(map[int]bool, len(devices))
	for i, dev := range devices {
		if dev.Selected {
			chosen[i] = true
		}
	}
	return pickerModel{
		devices: devices,
		chosen:  chosen,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.devices)-1 {
			m.cursor++
		}
	case " ":
		m.chosen[m.cursor] = !m.chosen[m.cursor]
	case "enter":
		m.confirm = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.abort = true
		return m, tea.Quit
	}

	return m, nil
}

func (m pickerModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Choose the drives to destructively test"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" up/down to move, SPACE to select, ENTER to continue, q to abort"))
	sb.WriteString("\n\n")

	for i, dev := range m.devices {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := "[ ]"
		if m.chosen[i] {
			mark = "[x]"
		}

		vendor := dev.Vendor
		if vendor == "" {
			vendor = "Unknown"
		}
		model := dev.Model
		if model == "" {
			model = "Unknown"
		}
		name := dev.Name
		if dev.Volume != "" {
			name = fmt.Sprintf("%s (%s)", dev.Name, dev.Volume)
		}

		sb.WriteString(fmt.Sprintf("%s%s %s %s %s %s\n",
			cursor, mark,
			deviceStyle.Render(fmt.Sprintf("%-16s", name)),
			fmt.Sprintf("%10s", humanize.IBytes(dev.SizeBytes)),
			fmt.Sprintf("%-10s", vendor),
			model,
		))
	}

	return sb.String()
}

// PickDevices presents an interactive device picklist and returns the
// paths of the chosen devices. Dismissing the picker, or confirming
// with nothing chosen, returns ErrNoSelection.
func PickDevices(devices []blkdev.Device) ([]string, error) {
	final, err := tea.NewProgram(newPickerModel(devices)).Run()
	if err != nil {
		return nil, errors.Wrap(err, "device picker")
	}

	m, ok := final.(pickerModel)
	if !ok || m.abort || !m.confirm {
		return nil, ErrNoSelection
	}

	var paths []string
	for i, dev := range m.devices {
		if m.chosen[i] {
			paths = append(paths, dev.Path)
		}
	}
	if len(paths) == 0 {
		return nil, ErrNoSelection
	}

	return paths, nil
}

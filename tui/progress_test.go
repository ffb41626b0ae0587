//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scorchtool/scorch/burn"
	"github.com/scorchtool/scorch/common/test"
)

func TestTui_ProgressModelSnapshots(t *testing.T) {
	for name, tc := range map[string]struct {
		rows    []burn.SlotState
		expDone bool
	}{
		"empty snapshot is not done": {},
		"in-flight devices": {
			rows: []burn.SlotState{
				{Slot: 0, Device: "/dev/sda", Progress: 40, Status: burn.WritingStatus(1)},
				{Slot: 1, Device: "/dev/sdb", Progress: 100, Status: burn.StatusPassed},
			},
		},
		"all terminal": {
			rows: []burn.SlotState{
				{Slot: 0, Device: "/dev/sda", Progress: 100, Status: burn.StatusPassed},
				{Slot: 1, Device: "/dev/sdb", Progress: 100, Status: burn.StatusFailed},
			},
			expDone: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			model := progressModel{header: "scorch"}

			next, cmd := model.Update(snapshotMsg(tc.rows))
			got := next.(progressModel)

			test.AssertEqual(t, tc.expDone, got.done, "done flag")
			if !tc.expDone {
				if cmd != nil {
					t.Fatal("expected no command while devices are in flight")
				}
				return
			}
			if cmd == nil {
				t.Fatal("expected quit command once all devices are terminal")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatalf("expected quit command, got %T", cmd())
			}
		})
	}
}

func TestTui_ProgressModelIgnoresKeys(t *testing.T) {
	model := progressModel{
		header: "scorch",
		rows: []burn.SlotState{
			{Slot: 0, Device: "/dev/sda", Progress: 10, Status: burn.WritingStatus(0)},
		},
	}

	// A launched run cannot be aborted from the view.
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		next, cmd := model.Update(key)
		got := next.(progressModel)

		test.AssertFalse(t, got.done, "done flag after key")
		if cmd != nil {
			t.Fatalf("key %q produced a command", key.String())
		}
	}
}

func TestTui_ProgressModelView(t *testing.T) {
	model := progressModel{
		header: "scorch",
		names:  map[string]string{"/dev/zd0": "zd0 (tank/scratch)"},
		rows: []burn.SlotState{
			{Slot: 0, Device: "/dev/zd0", Progress: 50, Status: burn.VerifyingStatus(2)},
			{Slot: 1, Device: "/dev/sdb", Progress: 100, Status: burn.StatusFailed},
		},
	}

	view := model.View()
	for _, want := range []string{
		"zd0 (tank/scratch)",
		"sdb",
		"verifying 'ff'",
		"verification failed",
		" 50%",
		"100%",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTui_RenderBar(t *testing.T) {
	for name, tc := range map[string]struct {
		progress  int
		expFilled int
	}{
		"zero":            {progress: 0, expFilled: 0},
		"half":            {progress: 50, expFilled: barWidth / 2},
		"full":            {progress: 100, expFilled: barWidth},
		"clamped low":     {progress: -1, expFilled: 0},
		"clamped high":    {progress: 250, expFilled: barWidth},
		"rounding down":   {progress: 1, expFilled: 0},
		"first full cell": {progress: 4, expFilled: 1},
	} {
		t.Run(name, func(t *testing.T) {
			bar := renderBar(tc.progress)

			test.AssertEqual(t, tc.expFilled, strings.Count(bar, "█"), "filled cells")
			test.AssertEqual(t, barWidth-tc.expFilled, strings.Count(bar, "░"), "empty cells")
		})
	}
}

// A run that fails before publishing any snapshot must still release
// the view via Quit rather than leaving Run blocked.
func TestTui_ProgressUIQuitUnblocksRun(t *testing.T) {
	ui := NewProgressUI("scorch", nil,
		tea.WithInput(&bytes.Buffer{}), tea.WithoutRenderer())

	runErr := make(chan error, 1)
	go func() {
		runErr <- ui.Run()
	}()

	// Send guarantees the event loop is draining messages before the
	// quit goes in; a pre-snapshot quit exercises the same path.
	ui.Observer()([]burn.SlotState{
		{Slot: 0, Device: "/dev/sda", Status: burn.WritingStatus(0)},
	})
	ui.Quit()

	select {
	case err := <-runErr:
		test.CmpErr(t, nil, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"sync"
	"testing"

	"github.com/scorchtool/scorch/common/test"
)

func TestBurn_TableTransitions(t *testing.T) {
	table := NewStatusTable(2)
	h := table.Handle(0)

	progress, status := table.Read(0)
	test.AssertEqual(t, 0, progress, "initial progress")
	test.AssertEqual(t, StatusUnknown, status, "initial status")

	h.SetStatus(WritingStatus(0))
	h.BumpProgress()
	h.BumpProgress()
	progress, status = table.Read(0)
	test.AssertEqual(t, 2, progress, "bumped progress")
	test.AssertEqual(t, WritingStatus(0), status, "writing status")

	// A phase transition resets progress for the new phase.
	h.SetStatus(VerifyingStatus(0))
	progress, status = table.Read(0)
	test.AssertEqual(t, 0, progress, "progress after phase change")
	test.AssertEqual(t, VerifyingStatus(0), status, "verifying status")

	// Sibling slot is untouched.
	progress, status = table.Read(1)
	test.AssertEqual(t, 0, progress, "sibling progress")
	test.AssertEqual(t, StatusUnknown, status, "sibling status")
}

func TestBurn_TableProgressSaturates(t *testing.T) {
	table := NewStatusTable(1)
	h := table.Handle(0)
	h.SetStatus(WritingStatus(0))

	for i := 0; i < 250; i++ {
		h.BumpProgress()
	}
	progress, _ := table.Read(0)
	test.AssertEqual(t, 100, progress, "saturated progress")
}

func TestBurn_TableTerminalAbsorbing(t *testing.T) {
	for name, terminal := range map[string]Status{
		"failed": StatusFailed,
		"passed": StatusPassed,
	} {
		t.Run(name, func(t *testing.T) {
			table := NewStatusTable(1)
			h := table.Handle(0)

			h.SetStatus(WritingStatus(2))
			h.SetStatus(terminal)

			progress, status := table.Read(0)
			test.AssertEqual(t, 100, progress, "terminal progress")
			test.AssertEqual(t, terminal, status, "terminal status")

			// No transition leaves a terminal state.
			h.SetStatus(WritingStatus(3))
			h.BumpProgress()
			progress, status = table.Read(0)
			test.AssertEqual(t, 100, progress, "progress after absorbed writes")
			test.AssertEqual(t, terminal, status, "status after absorbed writes")
		})
	}
}

// A reader racing the slot's writer must always observe a coherent
// (progress, status) pair: the pair is packed into one word, so a
// non-terminal status can never appear with another phase's progress
// beyond the saturation point.
func TestBurn_TableNoTornReads(t *testing.T) {
	table := NewStatusTable(1)
	h := table.Handle(0)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 4; i++ {
			h.SetStatus(WritingStatus(i))
			for p := 0; p < 100; p++ {
				h.BumpProgress()
			}
			h.SetStatus(VerifyingStatus(i))
			for p := 0; p < 100; p++ {
				h.BumpProgress()
			}
		}
		h.SetStatus(StatusPassed)
		close(stop)
	}()

	for {
		progress, status := table.Read(0)
		if progress < 0 || progress > 100 {
			t.Fatalf("torn read: progress %d out of range", progress)
		}
		if status != StatusUnknown && status != StatusPassed {
			idx := (int(status) - 1) / 2
			if idx < 0 || idx >= len(TestPatterns) {
				t.Fatalf("torn read: status %d not in state machine", status)
			}
		}
		select {
		case <-stop:
			wg.Wait()
			progress, status = table.Read(0)
			test.AssertEqual(t, 100, progress, "final progress")
			test.AssertEqual(t, StatusPassed, status, "final status")
			return
		default:
		}
	}
}

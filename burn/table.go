//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import "sync/atomic"

// maxProgress is the saturation point for per-phase progress.
const maxProgress = 100

// StatusTable tracks live (progress, status) pairs for every device in
// a run. It is sized once at orchestration start and never resized.
// Each slot has exactly one writer, the engine worker holding its
// SlotHandle; the orchestrator is a pure reader. Progress and status
// are packed into a single word so that readers can never observe a
// torn pair, e.g. the progress of one phase combined with the status
// label of another.
type StatusTable struct {
	slots []uint32
}

// NewStatusTable returns a table with capacity for n slots, all
// starting at zero progress and StatusUnknown.
func NewStatusTable(n int) *StatusTable {
	return &StatusTable{
		slots: make([]uint32, n),
	}
}

// Len returns the fixed number of slots in the table.
func (t *StatusTable) Len() int {
	return len(t.slots)
}

// Read atomically returns the (progress, status) pair for a slot.
func (t *StatusTable) Read(slot int) (int, Status) {
	packed := atomic.LoadUint32(&t.slots[slot])
	return int(packed & 0xff), Status(packed >> 8)
}

// Handle returns the single-writer handle for a slot. The caller is
// responsible for handing each slot's handle to exactly one worker.
func (t *StatusTable) Handle(slot int) *SlotHandle {
	return &SlotHandle{table: t, slot: slot}
}

// SlotHandle is the narrow write surface an engine worker gets for its
// assigned slot. It must not be shared between goroutines.
type SlotHandle struct {
	table *StatusTable
	slot  int
}

// Slot returns the handle's slot index.
func (h *SlotHandle) Slot() int {
	return h.slot
}

func (h *SlotHandle) load() (uint32, Status) {
	packed := atomic.LoadUint32(&h.table.slots[h.slot])
	return packed & 0xff, Status(packed >> 8)
}

func (h *SlotHandle) store(progress uint32, status Status) {
	atomic.StoreUint32(&h.table.slots[h.slot], uint32(status)<<8|progress&0xff)
}

// SetStatus transitions the slot to a new status, resetting progress
// to zero for the new phase. Terminal statuses are absorbing: once one
// is set, further transitions are ignored.
func (h *SlotHandle) SetStatus(status Status) {
	_, cur := h.load()
	if cur.IsTerminal() {
		return
	}
	progress := uint32(0)
	if status.IsTerminal() {
		progress = maxProgress
	}
	h.store(progress, status)
}

// BumpProgress increments the slot's progress by one percentage point,
// saturating at 100. A no-op once the slot is terminal.
func (h *SlotHandle) BumpProgress() {
	progress, cur := h.load()
	if cur.IsTerminal() || progress >= maxProgress {
		return
	}
	h.store(progress+1, cur)
}

//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scorchtool/scorch/logging"
)

const defaultPollInterval = 100 * time.Millisecond

type (
	// SlotState is one row of a poll snapshot: the live view of a
	// single device's test as last published by its worker.
	SlotState struct {
		Slot     int
		Device   string
		Progress int
		Status   Status
	}

	// Observer receives a snapshot of every slot at each poll tick,
	// and one final snapshot after all workers have finished. The
	// orchestrator has no dependency on how or whether snapshots are
	// rendered.
	Observer func([]SlotState)

	// Orchestrator fans a run out to one worker per device and polls
	// their shared status table until every device reaches a terminal
	// status. Workers are fully independent; a failure on one device
	// never aborts a sibling.
	Orchestrator struct {
		log      logging.Logger
		resolver GeometryResolver
		engine   *Engine
		poll     time.Duration
		observer Observer
	}
)

// NewOrchestrator returns an Orchestrator using the given resolver and
// a default engine.
func NewOrchestrator(log logging.Logger, resolver GeometryResolver) *Orchestrator {
	return &Orchestrator{
		log:      log,
		resolver: resolver,
		engine:   NewEngine(log),
		poll:     defaultPollInterval,
	}
}

// WithEngine overrides the engine used for workers.
func (o *Orchestrator) WithEngine(engine *Engine) *Orchestrator {
	o.engine = engine
	return o
}

// WithPollInterval overrides the status poll cadence.
func (o *Orchestrator) WithPollInterval(poll time.Duration) *Orchestrator {
	o.poll = poll
	return o
}

// WithObserver registers the snapshot consumer.
func (o *Orchestrator) WithObserver(observer Observer) *Orchestrator {
	o.observer = observer
	return o
}

// Run tests the given devices concurrently and blocks until every
// device reports a terminal status, returning one Result per device in
// input order. Slot indices are assigned densely in input order and
// are stable for the run's duration.
//
// ctx is only consulted before workers launch; once a worker is
// running there is deliberately no way to abort it short of process
// exit, so an in-flight test always runs to its terminal status.
func (o *Orchestrator) Run(ctx context.Context, devices []string) ([]Result, error) {
	if len(devices) == 0 {
		return nil, FaultNoDevicesSelected
	}
	seen := make(map[string]struct{}, len(devices))
	for _, dev := range devices {
		if _, ok := seen[dev]; ok {
			return nil, FaultDuplicateDevice(dev)
		}
		seen[dev] = struct{}{}
	}

	runID := uuid.New()
	o.log.Infof("run %s: testing %d device(s)", runID, len(devices))

	table := NewStatusTable(len(devices))
	results := make([]Result, len(devices))
	geometries := make([]Geometry, len(devices))

	// Resolve geometry up front. A device that cannot be resolved is
	// failed immediately without a worker; its siblings proceed.
	launch := make([]bool, len(devices))
	for i, dev := range devices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		geo, err := o.resolver.Resolve(dev)
		if err != nil {
			o.log.Errorf("run %s: %s: geometry resolution failed: %s", runID, dev, err)
			table.Handle(i).SetStatus(StatusFailed)
			results[i] = Result{Device: dev, Status: StatusFailed, Err: err}
			continue
		}
		geometries[i] = geo
		launch[i] = true
	}

	var wg sync.WaitGroup
	for i := range devices {
		if !launch[i] {
			continue
		}
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = o.engine.Run(devices[slot], geometries[slot], table.Handle(slot))
		}(i)
	}

	o.pollUntilDone(table, devices)
	wg.Wait()

	// One final snapshot so the observer sees the settled table.
	o.notify(table, devices)

	for _, res := range results {
		o.log.Infof("run %s: %s: %s", runID, res.Device, res.Status)
	}

	return results, nil
}

func (o *Orchestrator) pollUntilDone(table *StatusTable, devices []string) {
	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	for range ticker.C {
		if o.notify(table, devices) {
			return
		}
	}
}

// notify publishes a snapshot to the observer and reports whether
// every slot has reached a terminal status.
func (o *Orchestrator) notify(table *StatusTable, devices []string) bool {
	states := make([]SlotState, table.Len())
	done := true
	for slot := range states {
		progress, status := table.Read(slot)
		states[slot] = SlotState{
			Slot:     slot,
			Device:   devices[slot],
			Progress: progress,
			Status:   status,
		}
		if !status.IsTerminal() {
			done = false
		}
	}

	if o.observer != nil {
		o.observer(states)
	}
	return done
}

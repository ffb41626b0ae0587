//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"bytes"
	"math"

	"github.com/pkg/errors"

	"github.com/scorchtool/scorch/logging"
)

type (
	// Result is the final outcome of one device's test.
	Result struct {
		Device     string
		Status     Status
		Mismatches uint64
		Err        error
	}

	// Engine executes the write/verify test for a single device. It is
	// stateless between runs; one Engine may serve every worker in a
	// run concurrently.
	Engine struct {
		log  logging.Logger
		open Opener
	}
)

// NewEngine returns an Engine that opens devices with DirectOpen.
func NewEngine(log logging.Logger) *Engine {
	return &Engine{
		log:  log,
		open: DirectOpen,
	}
}

// WithOpener overrides how the engine opens devices. Used by tests to
// substitute simulated devices.
func (e *Engine) WithOpener(open Opener) *Engine {
	e.open = open
	return e
}

// progressStep returns the block interval between progress
// checkpoints, roughly one per percentage point. Devices with fewer
// than ~50 blocks would round to zero; they checkpoint every block
// instead.
func progressStep(blockCount uint64) uint64 {
	step := uint64(math.Round(float64(blockCount) / maxProgress))
	if step == 0 {
		step = 1
	}
	return step
}

// Run executes the full pattern sequence against one device,
// publishing progress and phase transitions through the slot handle.
// It always leaves the slot in a terminal status. Failures are
// confined to the returned Result; Run never panics on I/O errors and
// never touches any slot but its own.
func (e *Engine) Run(path string, geo Geometry, slot *SlotHandle) Result {
	res := Result{Device: path}
	fail := func(err error) Result {
		slot.SetStatus(StatusFailed)
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if !geo.IsValid() {
		return fail(FaultInvalidGeometry(path, geo))
	}

	dev, err := e.open(path)
	if err != nil {
		return fail(err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			e.log.Errorf("closing %s: %s", path, err)
		}
	}()

	e.log.Debugf("%s: testing %d blocks of %d bytes", path, geo.BlockCount(), geo.BlockBytes)

	for i, pattern := range TestPatterns {
		if err := e.writePattern(dev, geo, i, slot); err != nil {
			e.log.Errorf("%s: writing pattern %s failed: %s", path, pattern, err)
			return fail(err)
		}

		mismatches, err := e.verifyPattern(dev, geo, i, slot)
		res.Mismatches += mismatches
		if err != nil {
			e.log.Errorf("%s: verifying pattern %s failed: %s", path, pattern, err)
			return fail(err)
		}
		if mismatches > 0 {
			// A mismatch is a result, not an I/O fault; remaining
			// patterns still run so the whole device gets exercised.
			e.log.Noticef("%s: pattern %s: %d mismatched blocks", path, pattern, mismatches)
		}
	}

	if res.Mismatches > 0 {
		slot.SetStatus(StatusFailed)
		res.Status = StatusFailed
		return res
	}

	slot.SetStatus(StatusPassed)
	res.Status = StatusPassed
	return res
}

// writePattern fills every block with the pattern byte, in strictly
// increasing block order. Any write error aborts the device's test.
func (e *Engine) writePattern(dev Device, geo Geometry, patternIdx int, slot *SlotHandle) error {
	pattern := TestPatterns[patternIdx]
	slot.SetStatus(WritingStatus(patternIdx))

	buf := alignedBlock(int(geo.BlockBytes))
	pattern.Fill(buf)

	blockCount := geo.BlockCount()
	step := progressStep(blockCount)
	for blk := uint64(0); blk < blockCount; blk++ {
		if blk%step == 0 {
			slot.BumpProgress()
		}
		off := int64(blk * geo.BlockBytes)
		if _, err := dev.WriteAt(buf, off); err != nil {
			return errors.Wrapf(err, "write pattern %s at block %d", pattern, blk)
		}
	}

	return nil
}

// verifyPattern reads every block back and compares it against the
// pattern. Mismatches are counted but do not short-circuit the scan;
// only a read I/O error aborts early.
func (e *Engine) verifyPattern(dev Device, geo Geometry, patternIdx int, slot *SlotHandle) (uint64, error) {
	pattern := TestPatterns[patternIdx]
	slot.SetStatus(VerifyingStatus(patternIdx))

	want := alignedBlock(int(geo.BlockBytes))
	pattern.Fill(want)
	got := alignedBlock(int(geo.BlockBytes))

	var mismatches uint64
	blockCount := geo.BlockCount()
	step := progressStep(blockCount)
	for blk := uint64(0); blk < blockCount; blk++ {
		if blk%step == 0 {
			slot.BumpProgress()
		}
		off := int64(blk * geo.BlockBytes)
		if _, err := dev.ReadAt(got, off); err != nil {
			return mismatches, errors.Wrapf(err, "read pattern %s at block %d", pattern, blk)
		}
		if !bytes.Equal(got, want) {
			mismatches++
		}
	}

	return mismatches, nil
}

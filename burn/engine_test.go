//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/scorchtool/scorch/common/test"
	"github.com/scorchtool/scorch/logging"
)

const testBlockSize = 512

func uintRef(u uint64) *uint64 {
	return &u
}

func patternRef(p Pattern) *Pattern {
	return &p
}

func TestBurn_ProgressStep(t *testing.T) {
	for name, tc := range map[string]struct {
		blockCount uint64
		expStep    uint64
	}{
		"zero blocks":       {0, 1},
		"below one percent": {4, 1},
		"rounds down":       {120, 1},
		"rounds up":         {160, 2},
		"exact":             {10000, 100},
	} {
		t.Run(name, func(t *testing.T) {
			test.AssertEqual(t, tc.expStep, progressStep(tc.blockCount), "progress step")
		})
	}
}

func TestBurn_EngineRun(t *testing.T) {
	for name, tc := range map[string]struct {
		totalBytes    uint64
		geo           *Geometry
		devCfg        *MockDeviceConfig
		openErr       error
		expStatus     Status
		expMismatches uint64
		expErr        error
		expFinalByte  *byte
	}{
		"four block device passes": {
			totalBytes:   4 * testBlockSize,
			expStatus:    StatusPassed,
			expFinalByte: new(byte), // 0x00, the last pattern written
		},
		"six block device passes": {
			totalBytes:   6 * testBlockSize,
			expStatus:    StatusPassed,
			expFinalByte: new(byte),
		},
		"trailing partial block is ignored": {
			totalBytes: 4*testBlockSize + 100,
			geo:        &Geometry{TotalBytes: 4*testBlockSize + 100, BlockBytes: testBlockSize},
			expStatus:  StatusPassed,
		},
		"zero block size": {
			totalBytes: 4 * testBlockSize,
			geo:        &Geometry{TotalBytes: 4 * testBlockSize, BlockBytes: 0},
			expStatus:  StatusFailed,
			expErr:     errors.New("unusable geometry"),
		},
		"zero total size": {
			totalBytes: 0,
			geo:        &Geometry{TotalBytes: 0, BlockBytes: testBlockSize},
			expStatus:  StatusFailed,
			expErr:     errors.New("unusable geometry"),
		},
		"open access denied": {
			totalBytes: 4 * testBlockSize,
			openErr:    FaultDeviceAccessDenied("/dev/mock"),
			expStatus:  StatusFailed,
			expErr:     errors.New("was denied"),
		},
		"write fault aborts test": {
			totalBytes: 8 * testBlockSize,
			devCfg: &MockDeviceConfig{
				BlockBytes:     testBlockSize,
				FailWriteBlock: uintRef(2),
			},
			expStatus: StatusFailed,
			expErr:    errors.New("write pattern aa at block 2"),
		},
		"read fault aborts test": {
			totalBytes: 8 * testBlockSize,
			devCfg: &MockDeviceConfig{
				BlockBytes:    testBlockSize,
				FailReadBlock: uintRef(5),
			},
			expStatus: StatusFailed,
			expErr:    errors.New("read pattern aa at block 5"),
		},
		"corruption in first block": {
			totalBytes: 8 * testBlockSize,
			devCfg: &MockDeviceConfig{
				BlockBytes:  testBlockSize,
				CorruptByte: uintRef(0),
			},
			expStatus:     StatusFailed,
			expMismatches: 4, // one block per pattern
			expFinalByte:  new(byte),
		},
		"corruption in middle block": {
			totalBytes: 8 * testBlockSize,
			devCfg: &MockDeviceConfig{
				BlockBytes:  testBlockSize,
				CorruptByte: uintRef(4*testBlockSize + 17),
			},
			expStatus:     StatusFailed,
			expMismatches: 4,
			expFinalByte:  new(byte),
		},
		"corruption in last block": {
			totalBytes: 8 * testBlockSize,
			devCfg: &MockDeviceConfig{
				BlockBytes:  testBlockSize,
				CorruptByte: uintRef(8*testBlockSize - 1),
			},
			expStatus:     StatusFailed,
			expMismatches: 4,
			expFinalByte:  new(byte),
		},
		"dropped 55 writes fail verification": {
			totalBytes: 8 * testBlockSize,
			devCfg: &MockDeviceConfig{
				BlockBytes:  testBlockSize,
				DropPattern: patternRef(0x55),
			},
			expStatus:     StatusFailed,
			expMismatches: 8, // every block of the dropped pattern
			expFinalByte:  new(byte),
		},
	} {
		t.Run(name, func(t *testing.T) {
			log, buf := logging.NewTestLogger(t.Name())
			defer test.ShowBufferOnFailure(t, buf)

			devCfg := DefaultMockDeviceConfig(testBlockSize)
			if tc.devCfg != nil {
				devCfg = *tc.devCfg
			}
			dev := NewMockDevice(tc.totalBytes, devCfg)

			geo := Geometry{TotalBytes: tc.totalBytes, BlockBytes: testBlockSize}
			if tc.geo != nil {
				geo = *tc.geo
			}

			engine := NewEngine(log).
				WithOpener(MockOpener(map[string]Device{"/dev/mock": dev}, tc.openErr))

			table := NewStatusTable(1)
			res := engine.Run("/dev/mock", geo, table.Handle(0))

			test.AssertEqual(t, tc.expStatus, res.Status, "result status")
			test.AssertEqual(t, tc.expMismatches, res.Mismatches, "mismatch count")
			test.CmpErr(t, tc.expErr, res.Err)

			progress, status := table.Read(0)
			test.AssertEqual(t, tc.expStatus, status, "slot status")
			test.AssertEqual(t, 100, progress, "terminal slot progress")

			if tc.expErr == nil && tc.openErr == nil {
				test.AssertTrue(t, dev.Closed(), "device not closed after run")
			}

			if tc.expFinalByte != nil {
				for i, b := range dev.Bytes()[:geo.BlockCount()*geo.BlockBytes] {
					if b != *tc.expFinalByte {
						t.Fatalf("byte %d: expected %#x, got %#x", i, *tc.expFinalByte, b)
					}
				}
			}
		})
	}
}

// Running the engine twice over the same healthy device must succeed
// both times; the test is destructive but self-contained.
func TestBurn_EngineRunIdempotent(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	dev := NewMockDevice(6*testBlockSize, DefaultMockDeviceConfig(testBlockSize))
	geo := Geometry{TotalBytes: 6 * testBlockSize, BlockBytes: testBlockSize}

	for run := 0; run < 2; run++ {
		// Each run opens and closes the device anew.
		reopened := NewMockDevice(6*testBlockSize, DefaultMockDeviceConfig(testBlockSize))
		copy(reopened.store, dev.store)
		dev = reopened

		engine := NewEngine(log).
			WithOpener(MockOpener(map[string]Device{"/dev/mock": dev}, nil))
		table := NewStatusTable(1)

		res := engine.Run("/dev/mock", geo, table.Handle(0))
		test.AssertEqual(t, StatusPassed, res.Status, "run status")
	}
}

// The engine must drive each phase's status in the fixed pattern
// order, ending terminal.
func TestBurn_EngineStatusSequence(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	dev := NewMockDevice(4*testBlockSize, DefaultMockDeviceConfig(testBlockSize))
	geo := Geometry{TotalBytes: 4 * testBlockSize, BlockBytes: testBlockSize}

	var seen []Status
	table := NewStatusTable(1)
	// Wrap the device so each I/O samples the table, giving a
	// deterministic trace of phase transitions.
	engine := NewEngine(log).
		WithOpener(MockOpener(map[string]Device{"/dev/mock": statusSpy{dev, table, &seen}}, nil))

	res := engine.Run("/dev/mock", geo, table.Handle(0))
	test.AssertEqual(t, StatusPassed, res.Status, "result status")

	var unique []Status
	for _, s := range seen {
		if len(unique) == 0 || unique[len(unique)-1] != s {
			unique = append(unique, s)
		}
	}
	expSequence := []Status{
		WritingStatus(0), VerifyingStatus(0),
		WritingStatus(1), VerifyingStatus(1),
		WritingStatus(2), VerifyingStatus(2),
		WritingStatus(3), VerifyingStatus(3),
	}
	test.AssertEqual(t, expSequence, unique, "phase sequence")
}

type statusSpy struct {
	Device
	table *StatusTable
	seen  *[]Status
}

func (s statusSpy) sample() {
	_, status := s.table.Read(0)
	*s.seen = append(*s.seen, status)
}

func (s statusSpy) WriteAt(p []byte, off int64) (int, error) {
	s.sample()
	return s.Device.WriteAt(p, off)
}

func (s statusSpy) ReadAt(p []byte, off int64) (int, error) {
	s.sample()
	return s.Device.ReadAt(p, off)
}

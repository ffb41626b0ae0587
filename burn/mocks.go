//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"sync"

	"github.com/pkg/errors"
)

type (
	// MockDeviceConfig controls the behavior of a MockDevice.
	MockDeviceConfig struct {
		// FailWriteBlock, when set, makes writes covering that block
		// index return an I/O error.
		FailWriteBlock *uint64
		// FailReadBlock, when set, makes reads covering that block
		// index return an I/O error.
		FailReadBlock *uint64
		// DropPattern, when set, silently discards any write whose
		// payload is filled with that pattern byte, simulating a
		// device that acknowledges writes without persisting them.
		DropPattern *Pattern
		// CorruptByte, when set, flips the stored byte at that offset
		// on every read, simulating medium corruption between write
		// and verify.
		CorruptByte *uint64

		// BlockBytes is used to translate offsets to block indices
		// for the fault injection knobs above.
		BlockBytes uint64
	}

	// MockDevice is an in-memory block device backing store with
	// optional fault injection, used in place of real hardware by
	// engine and orchestrator tests.
	MockDevice struct {
		cfg MockDeviceConfig

		sync.Mutex
		store  []byte
		closed bool
	}
)

// DefaultMockDeviceConfig returns a config with no fault injection.
func DefaultMockDeviceConfig(blockBytes uint64) MockDeviceConfig {
	return MockDeviceConfig{BlockBytes: blockBytes}
}

// NewMockDevice returns a zero-filled in-memory device of the given
// total size.
func NewMockDevice(totalBytes uint64, cfg MockDeviceConfig) *MockDevice {
	return &MockDevice{
		cfg:   cfg,
		store: make([]byte, totalBytes),
	}
}

func (d *MockDevice) blockAt(off int64) uint64 {
	if d.cfg.BlockBytes == 0 {
		return 0
	}
	return uint64(off) / d.cfg.BlockBytes
}

func allBytesAre(p []byte, b byte) bool {
	for _, pb := range p {
		if pb != b {
			return false
		}
	}
	return len(p) > 0
}

// WriteAt implements Device.
func (d *MockDevice) WriteAt(p []byte, off int64) (int, error) {
	d.Lock()
	defer d.Unlock()

	if d.closed {
		return 0, errors.New("write to closed device")
	}
	if fb := d.cfg.FailWriteBlock; fb != nil && d.blockAt(off) == *fb {
		return 0, errors.Errorf("simulated write error at offset %d", off)
	}
	if off < 0 || int(off)+len(p) > len(d.store) {
		return 0, errors.Errorf("write beyond device end (offset %d, len %d)", off, len(p))
	}
	if dp := d.cfg.DropPattern; dp != nil && allBytesAre(p, byte(*dp)) {
		// Acknowledged but never persisted.
		return len(p), nil
	}

	return copy(d.store[off:], p), nil
}

// ReadAt implements Device.
func (d *MockDevice) ReadAt(p []byte, off int64) (int, error) {
	d.Lock()
	defer d.Unlock()

	if d.closed {
		return 0, errors.New("read from closed device")
	}
	if fb := d.cfg.FailReadBlock; fb != nil && d.blockAt(off) == *fb {
		return 0, errors.Errorf("simulated read error at offset %d", off)
	}
	if off < 0 || int(off)+len(p) > len(d.store) {
		return 0, errors.Errorf("read beyond device end (offset %d, len %d)", off, len(p))
	}

	n := copy(p, d.store[off:int(off)+len(p)])
	if cb := d.cfg.CorruptByte; cb != nil {
		if idx := int64(*cb) - off; idx >= 0 && idx < int64(n) {
			p[idx] ^= 0xff
		}
	}
	return n, nil
}

// Close implements Device.
func (d *MockDevice) Close() error {
	d.Lock()
	defer d.Unlock()

	if d.closed {
		return errors.New("device closed twice")
	}
	d.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (d *MockDevice) Closed() bool {
	d.Lock()
	defer d.Unlock()
	return d.closed
}

// Bytes returns a copy of the backing store.
func (d *MockDevice) Bytes() []byte {
	d.Lock()
	defer d.Unlock()
	out := make([]byte, len(d.store))
	copy(out, d.store)
	return out
}

// MockOpener returns an Opener serving the supplied devices by path,
// or openErr for every path if it is non-nil.
func MockOpener(devices map[string]Device, openErr error) Opener {
	return func(path string) (Device, error) {
		if openErr != nil {
			return nil, openErr
		}
		dev, ok := devices[path]
		if !ok {
			return nil, FaultDeviceNotFound(path)
		}
		return dev, nil
	}
}

// MockResolver is a GeometryResolver backed by static maps.
type MockResolver struct {
	Geometries map[string]Geometry
	Errors     map[string]error
}

// Resolve implements GeometryResolver.
func (r *MockResolver) Resolve(path string) (Geometry, error) {
	if err, ok := r.Errors[path]; ok {
		return Geometry{}, err
	}
	if geo, ok := r.Geometries[path]; ok {
		return geo, nil
	}
	return Geometry{}, FaultDeviceUnavailable(path, "not in mock resolver")
}

//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import (
	"io"
	"unsafe"
)

type (
	// Device is the narrow I/O surface the engine needs from an open
	// block device: positioned reads and writes plus deterministic
	// release of the handle.
	Device interface {
		io.ReaderAt
		io.WriterAt
		io.Closer
	}

	// Opener opens a block device for exclusive, unbuffered read-write
	// access. Verification reads through the returned Device must
	// reflect what was persisted to the medium, not the page cache.
	Opener func(path string) (Device, error)

	// Geometry holds the resolved size parameters of a device under
	// test. BlockBytes is the physical block size, used as the fixed
	// I/O chunk size for the whole test.
	Geometry struct {
		TotalBytes uint64
		BlockBytes uint64
	}

	// GeometryResolver resolves a device path to its geometry. A
	// resolution failure must abort the test for that device; callers
	// never assume a default geometry.
	GeometryResolver interface {
		Resolve(path string) (Geometry, error)
	}
)

// BlockCount derives the number of fully addressable blocks.
func (g Geometry) BlockCount() uint64 {
	if g.BlockBytes == 0 {
		return 0
	}
	return g.TotalBytes / g.BlockBytes
}

// IsValid indicates whether the geometry describes a testable device.
func (g Geometry) IsValid() bool {
	return g.BlockBytes > 0 && g.TotalBytes > 0
}

// bufAlignment satisfies O_DIRECT's memory alignment requirement for
// any physical block size in common use.
const bufAlignment = 4096

// alignedBlock allocates a buffer of the given size whose backing
// memory starts on a bufAlignment boundary, as required for direct
// I/O transfers.
func alignedBlock(size int) []byte {
	raw := make([]byte, size+bufAlignment)
	off := int(uintptr(unsafe.Pointer(&raw[0])) & (bufAlignment - 1))
	if off != 0 {
		off = bufAlignment - off
	}
	return raw[off : off+size]
}

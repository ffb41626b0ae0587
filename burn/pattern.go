//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package burn implements the destructive write/verify test engine and
// the orchestrator that runs it across multiple block devices in
// parallel. Every addressable block of a device is overwritten with a
// sequence of fixed byte patterns and read back to confirm that each
// pattern was persisted to the physical medium.
package burn

import "fmt"

// Pattern is one fixed byte value written uniformly across every block
// of a device during one phase of the test.
type Pattern byte

// TestPatterns holds the canonical patterns, applied in this order.
// Each pattern overwrites the previous one across the whole device, so
// a fully successful test leaves the device zero-filled. The order is
// fixed for reproducibility; the patterns themselves are independent.
var TestPatterns = []Pattern{0xAA, 0x55, 0xFF, 0x00}

func (p Pattern) String() string {
	return fmt.Sprintf("%02x", byte(p))
}

// Fill overwrites every byte of buf with the pattern byte.
func (p Pattern) Fill(buf []byte) {
	for i := range buf {
		buf[i] = byte(p)
	}
}

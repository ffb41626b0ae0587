//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package burn

import "fmt"

// Status describes where a device's test currently is in its
// lifecycle. Non-terminal codes identify the active phase and pattern;
// the two terminal codes are absorbing.
type Status uint8

const (
	// StatusUnknown is the zero value, reported before a worker has
	// started its first phase.
	StatusUnknown Status = 0

	// StatusFailed indicates at least one byte mismatch or I/O fault
	// occurred during the test. Terminal.
	StatusFailed Status = 20

	// StatusPassed indicates all patterns wrote and verified with zero
	// mismatches. Terminal.
	StatusPassed Status = 30
)

// WritingStatus returns the status code for the write phase of the
// pattern at the given position in TestPatterns.
func WritingStatus(patternIdx int) Status {
	return Status(1 + 2*patternIdx)
}

// VerifyingStatus returns the status code for the verify phase of the
// pattern at the given position in TestPatterns.
func VerifyingStatus(patternIdx int) Status {
	return Status(2 + 2*patternIdx)
}

// IsTerminal indicates whether no further transition can occur from
// this status.
func (s Status) IsTerminal() bool {
	return s == StatusFailed || s == StatusPassed
}

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "pending"
	case StatusFailed:
		return "verification failed"
	case StatusPassed:
		return "completed successfully"
	}

	patternIdx := (int(s) - 1) / 2
	if patternIdx < 0 || patternIdx >= len(TestPatterns) {
		return fmt.Sprintf("unknown status %d", uint8(s))
	}

	phase := "writing"
	if int(s)%2 == 0 {
		phase = "verifying"
	}
	return fmt.Sprintf("%s '%s'", phase, TestPatterns[patternIdx])
}

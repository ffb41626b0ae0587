//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package test provides utility functions for unit tests.
package test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertTrue asserts b is true.
func AssertTrue(t *testing.T, b bool, message string) {
	t.Helper()

	if !b {
		t.Fatal(message)
	}
}

// AssertFalse asserts b is false.
func AssertFalse(t *testing.T, b bool, message string) {
	t.Helper()

	if b {
		t.Fatal(message)
	}
}

// AssertEqual asserts b is equal to a.
func AssertEqual(t *testing.T, a, b interface{}, message string) {
	t.Helper()

	if diff := cmp.Diff(a, b); diff != "" {
		if len(message) > 0 {
			message += ", "
		}
		t.Fatalf("%sunexpected value (-want, +got):\n%s\n", message, diff)
	}
}

// CmpErr compares two errors for equality, ignoring
// any wrapped context.
func CmpErr(t *testing.T, want, got error) {
	t.Helper()

	if want == got {
		return
	}
	if want == nil && got != nil {
		t.Fatalf("unexpected error: %v", got)
	}
	if want != nil && got == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if !strings.Contains(got.Error(), want.Error()) {
		t.Fatalf("unexpected error\n(wanted: %v, got: %v)", want, got)
	}
}

// ShowBufferOnFailure displays the contents of the buffer
// if the test failed, then resets it. Typically used as a
// deferred call with a test logger's buffer so that log
// output is only shown for failing tests.
func ShowBufferOnFailure(t *testing.T, buf fmt.Stringer) {
	t.Helper()

	if t.Failed() {
		fmt.Printf("captured log output:\n%s", buf.String())
	}
	if r, ok := buf.(interface{ Reset() }); ok {
		r.Reset()
	}
}

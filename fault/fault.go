//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package fault provides a structured error type with a stable code,
// a description, and an optional suggested resolution for the user.
package fault

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/scorchtool/scorch/fault/code"
)

const (
	// UnknownDomainStr is the string used to represent an unknown domain.
	UnknownDomainStr = "unknown"
	// ResolutionUnknown is the string used to represent an unknown resolution.
	ResolutionUnknown = "no known resolution"
)

// UnknownFault represents an unknown fault.
var UnknownFault = &Fault{
	Code:       code.Unknown,
	Resolution: ResolutionUnknown,
}

// Fault represents a well-known error with a stable code and
// an optional suggested resolution.
type Fault struct {
	Domain      string    `json:"domain"`
	Code        code.Code `json:"code"`
	Description string    `json:"description"`
	Reason      string    `json:"reason,omitempty"`
	Resolution  string    `json:"resolution,omitempty"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: code = %d description = %q",
		sanitizeDomain(f.Domain), f.Code, f.Description)
}

// Equals attempts to compare the given error to this one. If they both
// resolve to a single fault with the same code, they are considered
// equivalent.
func (f *Fault) Equals(raw error) bool {
	other, ok := errors.Cause(raw).(*Fault)
	if !ok {
		return false
	}
	if other == nil {
		return f == nil
	}
	return f.Code == other.Code
}

func sanitizeDomain(domain string) string {
	if domain == "" {
		return UnknownDomainStr
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':':
			return '_'
		}
		return r
	}, domain)
}

// HasCode checks whether the error has the given code.
func HasCode(err error, c code.Code) bool {
	f, ok := errors.Cause(err).(*Fault)
	return ok && f != nil && f.Code == c
}

// IsFault indicates whether the given error is a *Fault.
func IsFault(err error) bool {
	_, ok := errors.Cause(err).(*Fault)
	return ok
}

// HasResolution indicates whether the given error has a suggested
// resolution defined.
func HasResolution(err error) bool {
	f := fromError(err)
	return f.Resolution != "" && f.Resolution != ResolutionUnknown
}

// ShowResolutionFor returns the suggested resolution for the given
// error, if one is defined.
func ShowResolutionFor(err error) string {
	f := fromError(err)
	resolution := f.Resolution
	if resolution == "" {
		resolution = ResolutionUnknown
	}
	return fmt.Sprintf("%s: code = %d resolution = %q",
		sanitizeDomain(f.Domain), f.Code, resolution)
}

func fromError(err error) *Fault {
	if f, ok := errors.Cause(err).(*Fault); ok && f != nil {
		return f
	}
	return UnknownFault
}

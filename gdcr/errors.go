// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package gdcr

import "errors"

// Resolution failures. None are retryable; each is terminal for the
// request that produced it and is surfaced as a structured payload, not a
// transport fault.
var (
	// ErrPointOutsideZones: no zoning polygon contains the query point.
	ErrPointOutsideZones = errors.New("point outside zones")

	// ErrZoneColumnMissing: the containing feature carries none of the
	// recognized zone-name property keys.
	ErrZoneColumnMissing = errors.New("zoning column not found")
)

// RegulationNotFoundError reports a partial success: the point resolved
// geometrically to a zone, but the regulation table has no entry for it.
// Callers branch on the Zone field.
type RegulationNotFoundError struct {
	Zone string
}

func (e *RegulationNotFoundError) Error() string {
	return "regulation data not found"
}

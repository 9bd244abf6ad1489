// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package gdcr

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldZone normalizes a zone name for regulation-table matching by
// trimming spaces, lowercasing and removing accents. Both table keys and
// query names go through it, so "Résidential " matches "residential".
func foldZone(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

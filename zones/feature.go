// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package zones

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"github.com/unjhamasala/gdcr-api/spatial"
)

// Accepted zone-name property keys, in priority order. Matching is
// case-insensitive; the first priority with at least one matching key
// wins, and among several case variants of the same key the
// lexicographically smallest one is used, so extraction does not depend
// on map iteration order.
var zoneNameKeys = []string{"zoning", "zone", "zone_name"}

// Feature is a zoning polygon (polygon or multi-polygon, WGS84) together
// with its property bag.
type Feature struct {
	Geometry   orb.Geometry
	Properties map[string]any
}

// ZoneName extracts the zone name from the feature's properties. The
// returned name has surrounding whitespace trimmed. ok is false when no
// recognized key is present or its value is empty.
func (f *Feature) ZoneName() (string, bool) {
	for _, want := range zoneNameKeys {
		var keys []string

		for k := range f.Properties {
			if strings.EqualFold(k, want) {
				keys = append(keys, k)
			}
		}

		if len(keys) == 0 {
			continue
		}

		sort.Strings(keys)

		v := f.Properties[keys[0]]
		if v == nil {
			return "", false
		}

		name := strings.TrimSpace(fmt.Sprint(v))
		if name == "" {
			return "", false
		}

		return name, true
	}

	return "", false
}

// Store supplies the zoning features that may contain a query point.
// Implementations return features in dataset order and may prefilter by
// bounding box; exact containment is the caller's job.
type Store interface {
	Candidates(pt spatial.Point) ([]*Feature, error)
}

// DataSourceError reports that the underlying zone dataset is missing,
// corrupt, or in an unsupported coordinate reference system.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("zone dataset %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func boundToBBox(b orb.Bound) spatial.BBox {
	return spatial.BBox{
		MinLng: b.Min[0],
		MinLat: b.Min[1],
		MaxLng: b.Max[0],
		MaxLat: b.Max[1],
	}
}

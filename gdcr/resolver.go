// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package gdcr

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/unjhamasala/gdcr-api/spatial"
	"github.com/unjhamasala/gdcr-api/zones"
)

// Lookup is a successful zone resolution: the zone name and its
// regulation fields.
type Lookup struct {
	Zone           string  `json:"zone"`
	BaseFSI        float64 `json:"base_fsi"`
	MaxHeightM     float64 `json:"max_height_m"`
	PermissibleUse string  `json:"permissible_use"`
}

// Resolver maps a coordinate to the zoning polygon containing it and
// joins the zone against the regulation table. It holds no per-request
// state and is safe for concurrent use.
type Resolver struct {
	store zones.Store
	regs  *RegulationTable
	cache *cellCache
}

// NewResolver builds a resolver over the given zone store and regulation
// table.
func NewResolver(store zones.Store, regs *RegulationTable) *Resolver {
	return &Resolver{store: store, regs: regs}
}

// EnableCache turns on the per-cell result cache at the given H3
// resolution. Resolution 10 cells are roughly 70 m across, fine enough
// that two points in the same cell share a zone in practice. Non-positive
// resolutions leave the cache off.
func (r *Resolver) EnableCache(res int) {
	if res <= 0 {
		r.cache = nil

		return
	}

	r.cache = newCellCache(res, defaultCacheEntries)
}

// Resolve maps pt to its zone and regulation record.
//
// The query point is built as (lng, lat): the geometry engine works in
// planar (x, y) order, and swapping the axes silently produces
// wrong-hemisphere results with no error. Containment is
// boundary-inclusive: a point on a polygon's edge counts as inside.
//
// Failures: ErrPointOutsideZones when no candidate contains the point,
// ErrZoneColumnMissing when the containing feature has no recognized
// zone-name key, *RegulationNotFoundError when the zone has no regulation
// entry (partial success, the zone name is carried on the error), and
// *zones.DataSourceError when the store itself fails.
func (r *Resolver) Resolve(pt spatial.Point) (*Lookup, error) {
	if r.cache == nil {
		return r.resolve(pt)
	}

	cell, ok := r.cache.cellOf(pt)
	if !ok {
		return r.resolve(pt)
	}

	if lookup, err, hit := r.cache.get(cell); hit {
		return lookup, err
	}

	lookup, err := r.resolve(pt)

	// Store faults are not resolution outcomes; don't pin them to a cell.
	var dsErr *zones.DataSourceError
	if !errors.As(err, &dsErr) {
		r.cache.put(cell, lookup, err)
	}

	return lookup, err
}

func (r *Resolver) resolve(pt spatial.Point) (*Lookup, error) {
	point := orb.Point{pt.Lng, pt.Lat}

	candidates, err := r.store.Candidates(pt)
	if err != nil {
		return nil, err
	}

	for _, f := range candidates {
		if !contains(f.Geometry, point) {
			continue
		}

		zone, ok := f.ZoneName()
		if !ok {
			return nil, ErrZoneColumnMissing
		}

		reg, ok := r.regs.Lookup(zone)
		if !ok {
			return nil, &RegulationNotFoundError{Zone: zone}
		}

		return &Lookup{
			Zone:           zone,
			BaseFSI:        reg.BaseFSI,
			MaxHeightM:     reg.MaxHeightM,
			PermissibleUse: reg.PermissibleUse,
		}, nil
	}

	return nil, ErrPointOutsideZones
}

func contains(g orb.Geometry, pt orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, pt)
	default:
		return false
	}
}

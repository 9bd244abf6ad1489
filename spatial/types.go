// Copyright 2026 The GDCR API Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import "fmt"

// Point represents a geographical point with latitude and longitude in
// decimal degrees (WGS84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Valid reports whether the point lies within the WGS84 coordinate range.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// BBox is an axis-aligned rectangle in geographic coordinate space. It is
// used to filter candidate polygons cheaply before exact containment
// testing.
type BBox struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// NewBBoxAround builds a box of the given half-width in degrees centered
// on p.
func NewBBoxAround(p Point, halfWidth float64) BBox {
	return BBox{
		MinLng: p.Lng - halfWidth,
		MinLat: p.Lat - halfWidth,
		MaxLng: p.Lng + halfWidth,
		MaxLat: p.Lat + halfWidth,
	}
}

// Contains reports whether p lies inside the box. Points on the edge are
// considered inside.
func (b BBox) Contains(p Point) bool {
	return p.Lng >= b.MinLng && p.Lng <= b.MaxLng &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Intersects reports whether the two boxes share any area or edge.
func (b BBox) Intersects(o BBox) bool {
	return b.MinLng <= o.MaxLng && b.MaxLng >= o.MinLng &&
		b.MinLat <= o.MaxLat && b.MaxLat >= o.MinLat
}

// Union extends b so it also covers o.
func (b BBox) Union(o BBox) BBox {
	if o.MinLng < b.MinLng {
		b.MinLng = o.MinLng
	}

	if o.MinLat < b.MinLat {
		b.MinLat = o.MinLat
	}

	if o.MaxLng > b.MaxLng {
		b.MaxLng = o.MaxLng
	}

	if o.MaxLat > b.MaxLat {
		b.MaxLat = o.MaxLat
	}

	return b
}

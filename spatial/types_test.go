// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"testing"
)

func TestPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{name: "Origin", point: Point{}, want: true},
		{name: "Typical coordinate", point: Point{Lat: 22.52, Lng: 72.25}, want: true},
		{name: "Latitude at pole", point: Point{Lat: 90, Lng: 0}, want: true},
		{name: "Longitude at antimeridian", point: Point{Lat: 0, Lng: -180}, want: true},
		{name: "Latitude out of range", point: Point{Lat: 90.1, Lng: 0}, want: false},
		{name: "Longitude out of range", point: Point{Lat: 0, Lng: 180.5}, want: false},
		{name: "Swapped lat/lon", point: Point{Lat: 182, Lng: 22}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxContains(t *testing.T) {
	box := NewBBoxAround(Point{Lat: 22.5, Lng: 72.5}, 0.05)

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{name: "Center", point: Point{Lat: 22.5, Lng: 72.5}, want: true},
		{name: "On edge", point: Point{Lat: 22.55, Lng: 72.5}, want: true},
		{name: "Corner", point: Point{Lat: 22.45, Lng: 72.45}, want: true},
		{name: "North of box", point: Point{Lat: 22.56, Lng: 72.5}, want: false},
		{name: "West of box", point: Point{Lat: 22.5, Lng: 72.44}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestBBoxIntersects(t *testing.T) {
	base := BBox{MinLng: 72.0, MinLat: 22.0, MaxLng: 73.0, MaxLat: 23.0}

	tests := []struct {
		name  string
		other BBox
		want  bool
	}{
		{name: "Overlapping", other: BBox{MinLng: 72.5, MinLat: 22.5, MaxLng: 73.5, MaxLat: 23.5}, want: true},
		{name: "Contained", other: BBox{MinLng: 72.2, MinLat: 22.2, MaxLng: 72.4, MaxLat: 22.4}, want: true},
		{name: "Touching edge", other: BBox{MinLng: 73.0, MinLat: 22.0, MaxLng: 74.0, MaxLat: 23.0}, want: true},
		{name: "Disjoint east", other: BBox{MinLng: 73.1, MinLat: 22.0, MaxLng: 74.0, MaxLat: 23.0}, want: false},
		{name: "Disjoint north", other: BBox{MinLng: 72.0, MinLat: 23.1, MaxLng: 73.0, MaxLat: 24.0}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.want)
			}

			// Intersection is symmetric.
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("Intersects is not symmetric for %v", tt.other)
			}
		})
	}
}

func TestBBoxUnion(t *testing.T) {
	a := BBox{MinLng: 72.0, MinLat: 22.0, MaxLng: 72.5, MaxLat: 22.5}
	b := BBox{MinLng: 72.3, MinLat: 21.8, MaxLng: 73.0, MaxLat: 22.4}

	got := a.Union(b)
	want := BBox{MinLng: 72.0, MinLat: 21.8, MaxLng: 73.0, MaxLat: 22.5}

	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

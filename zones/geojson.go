// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package zones

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/unjhamasala/gdcr-api/spatial"
)

// MemoryStore is the full-load strategy: the whole GeoJSON dataset is
// parsed once and kept in memory, with per-feature bounding boxes
// precomputed. It is immutable after construction and safe for concurrent
// readers without locking.
type MemoryStore struct {
	features []*Feature
	bounds   []spatial.BBox
}

// OpenMemoryStore parses the GeoJSON file at path into an in-memory
// store. A missing or corrupt file, or a non-WGS84 CRS declaration, is a
// *DataSourceError.
func OpenMemoryStore(path string) (*MemoryStore, error) {
	features, err := loadFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	s := &MemoryStore{
		features: features,
		bounds:   make([]spatial.BBox, len(features)),
	}

	for i, f := range features {
		s.bounds[i] = boundToBBox(f.Geometry.Bound())
	}

	return s, nil
}

// Len returns the number of loaded features.
func (s *MemoryStore) Len() int {
	return len(s.features)
}

// Candidates returns, in dataset order, the features whose bounding box
// contains pt.
func (s *MemoryStore) Candidates(pt spatial.Point) ([]*Feature, error) {
	var out []*Feature

	for i, f := range s.features {
		if s.bounds[i].Contains(pt) {
			out = append(out, f)
		}
	}

	return out, nil
}

// loadFeatureCollection reads and parses a GeoJSON feature collection,
// rejecting datasets that declare a non-WGS84 CRS.
func loadFeatureCollection(path string) ([]*Feature, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &DataSourceError{Source: path, Err: err}
	}

	if err := checkCRS(data); err != nil {
		return nil, &DataSourceError{Source: path, Err: err}
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &DataSourceError{Source: path, Err: err}
	}

	features := make([]*Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}

		features = append(features, &Feature{
			Geometry:   f.Geometry,
			Properties: map[string]any(f.Properties),
		})
	}

	return features, nil
}

// GeoJSON is WGS84 by definition; a legacy top-level "crs" member naming
// any other system would need reprojection, which is not supported.
func checkCRS(data []byte) error {
	var envelope struct {
		CRS *struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"crs"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("parsing geojson envelope: %w", err)
	}

	if envelope.CRS == nil {
		return nil
	}

	name := strings.ToUpper(envelope.CRS.Properties.Name)
	if strings.Contains(name, "4326") || strings.Contains(name, "CRS84") {
		return nil
	}

	return fmt.Errorf("unsupported coordinate reference system %q", envelope.CRS.Properties.Name)
}

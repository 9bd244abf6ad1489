// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package zones_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unjhamasala/gdcr-api/spatial"
	"github.com/unjhamasala/gdcr-api/zones"
)

func square(minLng, minLat, maxLng, maxLat float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}}
}

func newFeature(g orb.Geometry, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.Properties = geojson.Properties(props)

	return f
}

// testDataset writes a small zoning GeoJSON file: two regulated squares,
// one unmapped square, one square with no zone key and a narrow
// east-west corridor strip.
func testDataset(t *testing.T) string {
	t.Helper()

	fc := geojson.NewFeatureCollection()
	fc.Append(newFeature(square(72.2, 22.5, 72.3, 22.6), map[string]any{"zoning": "Residential"}))
	fc.Append(newFeature(square(72.4, 22.5, 72.5, 22.6), map[string]any{"zone": "Commercial"}))
	fc.Append(newFeature(square(72.6, 22.5, 72.7, 22.6), map[string]any{"zoning": "Unmapped"}))
	fc.Append(newFeature(square(72.8, 22.5, 72.9, 22.6), map[string]any{"district": "west"}))
	fc.Append(newFeature(square(72.0, 22.00, 73.0, 22.02), map[string]any{"zone_name": "Corridor"}))

	return writeDataset(t, fc)
}

func writeDataset(t *testing.T, fc *geojson.FeatureCollection) string {
	t.Helper()

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "zones.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestOpenMemoryStore(t *testing.T) {
	store, err := zones.OpenMemoryStore(testDataset(t))
	require.NoError(t, err)
	assert.Equal(t, 5, store.Len())

	// Bounding boxes prefilter: only the residential square covers this
	// point.
	candidates, err := store.Candidates(spatial.Point{Lat: 22.55, Lng: 72.25})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	zone, ok := candidates[0].ZoneName()
	require.True(t, ok)
	assert.Equal(t, "Residential", zone)

	// Far away from everything.
	candidates, err = store.Candidates(spatial.Point{Lat: 10, Lng: 10})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestOpenMemoryStoreMissingFile(t *testing.T) {
	_, err := zones.OpenMemoryStore(filepath.Join(t.TempDir(), "nope.geojson"))

	var dsErr *zones.DataSourceError
	require.ErrorAs(t, err, &dsErr)
}

func TestOpenMemoryStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.geojson")
	require.NoError(t, os.WriteFile(path, []byte("{not geojson"), 0o600))

	_, err := zones.OpenMemoryStore(path)

	var dsErr *zones.DataSourceError
	require.ErrorAs(t, err, &dsErr)
}

func TestOpenMemoryStoreCRS(t *testing.T) {
	tests := []struct {
		name    string
		crs     string
		wantErr bool
	}{
		{name: "No crs member", crs: ""},
		{name: "EPSG 4326", crs: `"crs": {"type": "name", "properties": {"name": "EPSG:4326"}},`},
		{name: "OGC CRS84", crs: `"crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:OGC:1.3:CRS84"}},`},
		{name: "Projected CRS", crs: `"crs": {"type": "name", "properties": {"name": "EPSG:32643"}},`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{
				"type": "FeatureCollection",
				` + tt.crs + `
				"features": [{
					"type": "Feature",
					"properties": {"zoning": "Residential"},
					"geometry": {
						"type": "Polygon",
						"coordinates": [[[72.2, 22.5], [72.3, 22.5], [72.3, 22.6], [72.2, 22.6], [72.2, 22.5]]]
					}
				}]
			}`

			path := filepath.Join(t.TempDir(), "zones.geojson")
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

			store, err := zones.OpenMemoryStore(path)
			if tt.wantErr {
				var dsErr *zones.DataSourceError
				require.ErrorAs(t, err, &dsErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, store.Len())
		})
	}
}

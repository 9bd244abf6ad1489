// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package zones_test

import (
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unjhamasala/gdcr-api/gdcr"
	"github.com/unjhamasala/gdcr-api/spatial"
	"github.com/unjhamasala/gdcr-api/zones"
)

func setupContainer(t *testing.T, dataset string) *sql.DB {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	n, err := zones.Ingest(db, dataset)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	return db
}

func TestIngestAndCount(t *testing.T) {
	db := setupContainer(t, testDataset(t))

	n, err := zones.Count(db)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// Re-ingesting replaces, not appends.
	_, err = zones.Ingest(db, testDataset(t))
	require.NoError(t, err)

	n, err = zones.Count(db)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestContainerCandidates(t *testing.T) {
	db := setupContainer(t, testDataset(t))
	store := zones.NewContainerStore(db, zones.DefaultWindow)

	candidates, err := store.Candidates(spatial.Point{Lat: 22.55, Lng: 72.25})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	zone, ok := candidates[0].ZoneName()
	require.True(t, ok)
	assert.Equal(t, "Residential", zone)

	candidates, err = store.Candidates(spatial.Point{Lat: 10, Lng: 10})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestContainerWindowFilters(t *testing.T) {
	db := setupContainer(t, testDataset(t))

	// A generous window picks up neighbors of the residential square, a
	// tight one does not.
	wide := zones.NewContainerStore(db, 0.5)
	tight := zones.NewContainerStore(db, 0.01)

	pt := spatial.Point{Lat: 22.55, Lng: 72.35}

	candidates, err := wide.Candidates(pt)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(candidates), 2)

	candidates, err = tight.Candidates(pt)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

// Both strategies must produce identical lookup results for the same
// coordinate whenever the window covers the true polygon.
func TestStrategiesAgree(t *testing.T) {
	dataset := testDataset(t)

	memStore, err := zones.OpenMemoryStore(dataset)
	require.NoError(t, err)

	db := setupContainer(t, dataset)
	winStore := zones.NewContainerStore(db, zones.DefaultWindow)

	regs := gdcr.NewRegulationTable([]gdcr.Regulation{
		{Zoning: "Residential", BaseFSI: 1.8, MaxHeightM: 25, PermissibleUse: "residential"},
		{Zoning: "Commercial", BaseFSI: 3.0, MaxHeightM: 45, PermissibleUse: "commercial"},
		{Zoning: "Corridor", BaseFSI: 2.5, MaxHeightM: 40, PermissibleUse: "mixed"},
	})

	full := gdcr.NewResolver(memStore, regs)
	windowed := gdcr.NewResolver(winStore, regs)

	points := []spatial.Point{
		{Lat: 22.55, Lng: 72.25}, // residential
		{Lat: 22.55, Lng: 72.45}, // commercial
		{Lat: 22.55, Lng: 72.65}, // unmapped zone
		{Lat: 22.55, Lng: 72.85}, // zone key missing
		{Lat: 22.01, Lng: 72.5},  // corridor strip
		{Lat: 22.55, Lng: 72.35}, // between zones
		{Lat: 10, Lng: 10},       // far outside
	}

	for _, pt := range points {
		fullLookup, fullErr := full.Resolve(pt)
		winLookup, winErr := windowed.Resolve(pt)

		if diff := cmp.Diff(fullLookup, winLookup); diff != "" {
			t.Errorf("point %v: lookup mismatch (-full +windowed):\n%s", pt, diff)
		}

		switch {
		case fullErr == nil:
			assert.NoError(t, winErr, "point %v", pt)
		case winErr == nil:
			t.Errorf("point %v: full strategy failed (%v), windowed did not", pt, fullErr)
		default:
			assert.Equal(t, fullErr.Error(), winErr.Error(), "point %v", pt)
		}
	}
}

// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package zones

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/paulmach/orb/geojson"
	"github.com/schollz/progressbar/v3"

	"github.com/unjhamasala/gdcr-api/spatial"
)

// DefaultWindow is the half-width in degrees of the bounding box used to
// filter candidates in the windowed strategy (roughly 5 km).
const DefaultWindow = 0.05

const containerSource = "zones container"

// ContainerStore is the windowed strategy: zoning features live in a
// DuckDB container and only the rows whose bounding box intersects a
// window centered on the query point are read and parsed per request.
// Memory stays flat at the cost of repeated I/O.
type ContainerStore struct {
	db     *sql.DB
	window float64
}

// NewContainerStore wraps an open zone container. window is the bounding
// box half-width in degrees; non-positive values fall back to
// DefaultWindow.
func NewContainerStore(db *sql.DB, window float64) *ContainerStore {
	if window <= 0 {
		window = DefaultWindow
	}

	return &ContainerStore{db: db, window: window}
}

// Candidates reads the features whose stored bounding box intersects the
// window around pt, in ingest order.
func (s *ContainerStore) Candidates(pt spatial.Point) ([]*Feature, error) {
	box := spatial.NewBBoxAround(pt, s.window)

	rows, err := s.db.Query(`
		SELECT geometry, properties
		FROM zones
		WHERE min_lng <= ? AND max_lng >= ?
		  AND min_lat <= ? AND max_lat >= ?
		ORDER BY id
	`, box.MaxLng, box.MinLng, box.MaxLat, box.MinLat)
	if err != nil {
		return nil, &DataSourceError{Source: containerSource, Err: err}
	}
	defer rows.Close()

	var out []*Feature

	for rows.Next() {
		var geomJSON, propsJSON string
		if err := rows.Scan(&geomJSON, &propsJSON); err != nil {
			return nil, &DataSourceError{Source: containerSource, Err: err}
		}

		geom, err := geojson.UnmarshalGeometry([]byte(geomJSON))
		if err != nil {
			return nil, &DataSourceError{Source: containerSource, Err: fmt.Errorf("parsing geometry: %w", err)}
		}

		props := make(map[string]any)
		if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
			return nil, &DataSourceError{Source: containerSource, Err: fmt.Errorf("parsing properties: %w", err)}
		}

		out = append(out, &Feature{
			Geometry:   geom.Geometry(),
			Properties: props,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Source: containerSource, Err: err}
	}

	return out, nil
}

// CreateSchema creates the zone container table.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS zones (
			id INTEGER NOT NULL,
			min_lng DOUBLE NOT NULL,
			min_lat DOUBLE NOT NULL,
			max_lng DOUBLE NOT NULL,
			max_lat DOUBLE NOT NULL,
			geometry VARCHAR NOT NULL,
			properties VARCHAR NOT NULL
		);
	`)

	return err
}

// Count returns the number of features in the container.
func Count(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM zones`).Scan(&n); err != nil {
		return 0, &DataSourceError{Source: containerSource, Err: err}
	}

	return n, nil
}

// Ingest replaces the container's content with the features of the
// GeoJSON file at geojsonPath, storing each feature's bounding box
// alongside its geometry and properties. Returns the number of features
// written.
func Ingest(db *sql.DB, geojsonPath string) (int, error) {
	features, err := loadFeatureCollection(geojsonPath)
	if err != nil {
		return 0, err
	}

	if err := CreateSchema(db); err != nil {
		return 0, fmt.Errorf("creating zones schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting ingest transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback ingest transaction: %v", err)
		}
	}()

	if _, err := tx.Exec(`DELETE FROM zones`); err != nil {
		return 0, fmt.Errorf("clearing zones table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO zones (id, min_lng, min_lat, max_lng, max_lat, geometry, properties)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(features),
			progressbar.OptionSetDescription("Ingesting zones"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i, f := range features {
		geomJSON, err := json.Marshal(geojson.NewGeometry(f.Geometry))
		if err != nil {
			return 0, fmt.Errorf("encoding geometry %d: %w", i, err)
		}

		propsJSON, err := json.Marshal(f.Properties)
		if err != nil {
			return 0, fmt.Errorf("encoding properties %d: %w", i, err)
		}

		b := boundToBBox(f.Geometry.Bound())

		if _, err := stmt.Exec(i, b.MinLng, b.MinLat, b.MaxLng, b.MaxLat, string(geomJSON), string(propsJSON)); err != nil {
			return 0, fmt.Errorf("inserting feature %d: %w", i, err)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing ingest: %w", err)
	}

	return len(features), nil
}

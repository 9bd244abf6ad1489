// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/type/latlng"

	"github.com/unjhamasala/gdcr-api/spatial"
)

// ErrDocumentNotFound is returned by DocumentStore.Get when no document
// exists under the given id.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is the remote collaborator holding property documents.
// The production implementation is Firestore; tests substitute a fake.
type DocumentStore interface {
	// Get returns the document's fields, or ErrDocumentNotFound.
	Get(ctx context.Context, id string) (map[string]any, error)
	// Update merges the given fields onto the document.
	Update(ctx context.Context, id string, fields map[string]any) error
}

// Geo-field names checked on a document, in order.
var geoFieldNames = []string{"lat_long_land", "lat_long_plot"}

// docPoint extracts the coordinate stored on a document. Firestore
// geopoints arrive as *latlng.LatLng; a plain map with latitude and
// longitude keys is also accepted.
func docPoint(doc map[string]any) (spatial.Point, bool) {
	for _, name := range geoFieldNames {
		v, ok := doc[name]
		if !ok || v == nil {
			continue
		}

		switch geo := v.(type) {
		case *latlng.LatLng:
			return spatial.Point{Lat: geo.GetLatitude(), Lng: geo.GetLongitude()}, true
		case map[string]any:
			lat, okLat := geo["latitude"].(float64)
			lng, okLng := geo["longitude"].(float64)

			if okLat && okLng {
				return spatial.Point{Lat: lat, Lng: lng}, true
			}
		}
	}

	return spatial.Point{}, false
}

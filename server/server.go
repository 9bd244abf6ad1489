// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/unjhamasala/gdcr-api/gdcr"
	"github.com/unjhamasala/gdcr-api/spatial"
	"github.com/unjhamasala/gdcr-api/zones"
)

// Server exposes the zone resolver over HTTP. Dependencies are injected
// once at construction; handlers keep no state of their own.
type Server struct {
	resolver *gdcr.Resolver
	docs     DocumentStore
}

// New builds a server. docs may be nil when the document endpoint is not
// configured.
func New(resolver *gdcr.Resolver, docs DocumentStore) *Server {
	return &Server{resolver: resolver, docs: docs}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", s.health)
	r.GET("/gdcr-by-latlon", s.gdcrByLatLon)
	r.POST("/gdcr-by-doc", s.gdcrByDoc)

	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) gdcrByLatLon(ctx *gin.Context) {
	lat, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat parameter"})

		return
	}

	lon, err := strconv.ParseFloat(ctx.Query("lon"), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon parameter"})

		return
	}

	pt := spatial.Point{Lat: lat, Lng: lon}
	if !pt.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lat/lon out of range"})

		return
	}

	code, payload := lookupPayload(s.resolver.Resolve(pt))
	ctx.JSON(code, payload)
}

type docRequest struct {
	DocID string `json:"doc_id" binding:"required"`
}

func (s *Server) gdcrByDoc(ctx *gin.Context) {
	var req docRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if s.docs == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "document store not configured"})

		return
	}

	rctx := ctx.Request.Context()

	doc, err := s.docs.Get(rctx, req.DocID)
	if err != nil {
		// Reproduced from the existing API contract: an unknown document
		// answers 200 with a structured error, not a 404.
		if errors.Is(err, ErrDocumentNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"error": "document not found"})

			return
		}

		log.Printf("document %s: %v", req.DocID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	pt, ok := docPoint(doc)
	if !ok {
		ctx.JSON(http.StatusOK, gin.H{"error": "lat/long not found in document"})

		return
	}

	lookup, err := s.resolver.Resolve(pt)
	if err != nil {
		code, payload := lookupPayload(nil, err)
		ctx.JSON(code, payload)

		return
	}

	err = s.docs.Update(rctx, req.DocID, map[string]any{
		"zoning_admin":            lookup.Zone,
		"fsi_admin":               lookup.BaseFSI,
		"permissibleheight_admin": lookup.MaxHeightM,
	})
	if err != nil {
		log.Printf("updating document %s: %v", req.DocID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "GDCR updated",
		"doc_id": req.DocID,
		"zone":   lookup.Zone,
	})
}

// lookupPayload maps a resolver outcome to an HTTP status and JSON body.
// Resolution failures are 200-status structured payloads; only store
// faults surface as server errors.
func lookupPayload(lookup *gdcr.Lookup, err error) (int, any) {
	switch {
	case err == nil:
		return http.StatusOK, lookup
	case errors.Is(err, gdcr.ErrPointOutsideZones),
		errors.Is(err, gdcr.ErrZoneColumnMissing):
		return http.StatusOK, gin.H{"error": err.Error()}
	}

	var notFound *gdcr.RegulationNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusOK, gin.H{"zone": notFound.Zone, "error": notFound.Error()}
	}

	var dsErr *zones.DataSourceError
	if errors.As(err, &dsErr) {
		log.Printf("zone store: %v", err)
	}

	return http.StatusInternalServerError, gin.H{"error": err.Error()}
}

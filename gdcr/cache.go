// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package gdcr

import (
	"sync"

	"github.com/uber/h3-go/v4"

	"github.com/unjhamasala/gdcr-api/spatial"
)

const defaultCacheEntries = 4096

// cellCache memoizes lookup outcomes per H3 cell so repeated queries in
// the same neighborhood skip the store entirely. When full it is reset
// wholesale rather than evicted entry by entry.
type cellCache struct {
	mu         sync.RWMutex
	res        int
	maxEntries int
	entries    map[h3.Cell]cacheEntry
}

type cacheEntry struct {
	lookup *Lookup
	err    error
}

func newCellCache(res, maxEntries int) *cellCache {
	return &cellCache{
		res:        res,
		maxEntries: maxEntries,
		entries:    make(map[h3.Cell]cacheEntry),
	}
}

func (c *cellCache) cellOf(pt spatial.Point) (h3.Cell, bool) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(pt.Lat, pt.Lng), c.res)
	if err != nil {
		return 0, false
	}

	return cell, true
}

func (c *cellCache) get(cell h3.Cell) (*Lookup, error, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[cell]

	return e.lookup, e.err, ok
}

func (c *cellCache) put(cell h3.Cell, lookup *Lookup, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[h3.Cell]cacheEntry)
	}

	c.entries[cell] = cacheEntry{lookup: lookup, err: err}
}

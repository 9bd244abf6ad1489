// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package gdcr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Regulation is one GDCR record: the building regulations attached to a
// named zone.
type Regulation struct {
	Zoning         string  `json:"zoning"`
	BaseFSI        float64 `json:"base_fsi"`
	MaxHeightM     float64 `json:"max_height_m"`
	PermissibleUse string  `json:"permissible_use"`
}

// regulationRow mirrors one entry of the master file. The zone name may
// appear under any of the recognized keys.
type regulationRow struct {
	Zoning         string  `json:"zoning"`
	Zone           string  `json:"zone"`
	ZoneName       string  `json:"zone_name"`
	BaseFSI        float64 `json:"base_fsi"`
	MaxHeightM     float64 `json:"max_height_m"`
	PermissibleUse string  `json:"permissible_use"`
}

func (r *regulationRow) key() string {
	switch {
	case r.Zoning != "":
		return r.Zoning
	case r.Zone != "":
		return r.Zone
	default:
		return r.ZoneName
	}
}

// RegulationTable is a read-only index from folded zone name to
// Regulation, built once at startup. Lookup is exact-match on the folded
// key; there is no fuzzy or prefix matching.
type RegulationTable struct {
	byZone map[string]*Regulation
}

// LoadRegulations reads the GDCR master file (a JSON array of records).
// A missing or malformed file, or a record with no zone name, is an
// error; callers treat it as fatal at startup.
func LoadRegulations(path string) (*RegulationTable, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading regulation file: %w", err)
	}

	var rows []regulationRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing regulation file %s: %w", path, err)
	}

	regs := make([]Regulation, 0, len(rows))

	for i := range rows {
		row := &rows[i]

		key := row.key()
		if key == "" {
			return nil, fmt.Errorf("regulation file %s: record %d has no zone name", path, i)
		}

		regs = append(regs, Regulation{
			Zoning:         key,
			BaseFSI:        row.BaseFSI,
			MaxHeightM:     row.MaxHeightM,
			PermissibleUse: row.PermissibleUse,
		})
	}

	return NewRegulationTable(regs), nil
}

// NewRegulationTable indexes the given records by folded zone name.
func NewRegulationTable(regs []Regulation) *RegulationTable {
	table := &RegulationTable{byZone: make(map[string]*Regulation, len(regs))}

	for i := range regs {
		table.byZone[foldZone(regs[i].Zoning)] = &regs[i]
	}

	return table
}

// Lookup returns the regulation for the given zone name, matching after
// folding.
func (t *RegulationTable) Lookup(zone string) (*Regulation, bool) {
	r, ok := t.byZone[foldZone(zone)]

	return r, ok
}

// Len returns the number of indexed regulations.
func (t *RegulationTable) Len() int {
	return len(t.byZone)
}

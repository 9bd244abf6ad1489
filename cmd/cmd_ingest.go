// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/unjhamasala/gdcr-api/zones"
)

type ingestOptions struct {
	Dataset    string
	DatasetURL string
	Container  string
}

var ingestOpts = &ingestOptions{}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the windowed zone container from the GeoJSON dataset",
	Long: `Reads the zone dataset (downloading it first when no local copy exists)
and rebuilds the DuckDB container used by the windowed lookup strategy.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := zones.EnsureDataset(ingestOpts.Dataset, ingestOpts.DatasetURL); err != nil {
			return fmt.Errorf("provisioning zone dataset: %w", err)
		}

		db, err := sql.Open("duckdb", ingestOpts.Container)
		if err != nil {
			return fmt.Errorf("opening zone container: %w", err)
		}
		defer db.Close()

		n, err := zones.Ingest(db, ingestOpts.Dataset)
		if err != nil {
			return fmt.Errorf("ingesting zone dataset: %w", err)
		}

		log.Printf("Ingested %d zones into %s", n, ingestOpts.Container)

		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestOpts.Dataset, "dataset", "Lothal_zones.geojson", "zone dataset GeoJSON file")
	ingestCmd.Flags().StringVar(&ingestOpts.DatasetURL, "dataset-url", zones.DefaultDatasetURL, "URL to fetch the dataset from when absent")
	ingestCmd.Flags().StringVar(&ingestOpts.Container, "container", "zones.duckdb", "zone container file to build")

	rootCmd.AddCommand(ingestCmd)
}

// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/unjhamasala/gdcr-api/gdcr"
	"github.com/unjhamasala/gdcr-api/server"
	"github.com/unjhamasala/gdcr-api/zones"
)

type serveOptions struct {
	Addr        string
	Dataset     string
	DatasetURL  string
	Regulations string
	Strategy    string
	Window      float64
	Container   string
	Credentials string
	Collection  string
	CacheRes    int
}

var serveOpts = &serveOptions{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GDCR lookup HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_ = godotenv.Load(".env")

		if port := os.Getenv("PORT"); port != "" && serveOpts.Addr == defaultAddr {
			serveOpts.Addr = ":" + port
		}

		regs, err := gdcr.LoadRegulations(serveOpts.Regulations)
		if err != nil {
			return fmt.Errorf("loading regulation table: %w", err)
		}

		log.Printf("Loaded %d regulations from %s", regs.Len(), serveOpts.Regulations)

		if err := zones.EnsureDataset(serveOpts.Dataset, serveOpts.DatasetURL); err != nil {
			return fmt.Errorf("provisioning zone dataset: %w", err)
		}

		store, closeStore, err := openStore(serveOpts)
		if err != nil {
			return err
		}
		defer closeStore()

		resolver := gdcr.NewResolver(store, regs)
		resolver.EnableCache(serveOpts.CacheRes)

		var docs server.DocumentStore

		if serveOpts.Credentials == "" {
			log.Println("No credentials file configured - /gdcr-by-doc disabled")
		} else {
			fs, err := server.NewFirestoreStore(context.Background(), serveOpts.Credentials, serveOpts.Collection)
			if err != nil {
				return fmt.Errorf("opening document store: %w", err)
			}
			defer fs.Close()

			docs = fs
		}

		log.Printf("Serving on %s (strategy: %s)", serveOpts.Addr, serveOpts.Strategy)

		return server.New(resolver, docs).Run(serveOpts.Addr)
	},
}

// openStore builds the zone store for the configured strategy and returns
// a cleanup func.
func openStore(opts *serveOptions) (zones.Store, func(), error) {
	switch opts.Strategy {
	case "full":
		store, err := zones.OpenMemoryStore(opts.Dataset)
		if err != nil {
			return nil, nil, fmt.Errorf("loading zone dataset: %w", err)
		}

		log.Printf("Loaded %d zones from %s", store.Len(), opts.Dataset)

		return store, func() {}, nil
	case "windowed":
		db, err := sql.Open("duckdb", opts.Container)
		if err != nil {
			return nil, nil, fmt.Errorf("opening zone container: %w", err)
		}

		if err := zones.CreateSchema(db); err != nil {
			db.Close()

			return nil, nil, fmt.Errorf("creating zone container schema: %w", err)
		}

		n, err := zones.Count(db)
		if err != nil {
			db.Close()

			return nil, nil, err
		}

		if n == 0 {
			if n, err = zones.Ingest(db, opts.Dataset); err != nil {
				db.Close()

				return nil, nil, fmt.Errorf("ingesting zone dataset: %w", err)
			}

			log.Printf("Ingested %d zones into %s", n, opts.Container)
		}

		log.Printf("Zone container %s holds %d zones", opts.Container, n)

		return zones.NewContainerStore(db, opts.Window), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown strategy %q (want full or windowed)", opts.Strategy)
	}
}

const defaultAddr = ":8000"

func init() {
	serveCmd.Flags().StringVar(&serveOpts.Addr, "addr", defaultAddr, "listen address (PORT env overrides the default)")
	serveCmd.Flags().StringVar(&serveOpts.Dataset, "dataset", "Lothal_zones.geojson", "zone dataset GeoJSON file")
	serveCmd.Flags().StringVar(&serveOpts.DatasetURL, "dataset-url", zones.DefaultDatasetURL, "URL to fetch the dataset from when absent")
	serveCmd.Flags().StringVar(&serveOpts.Regulations, "regulations", "gdcr_masterjson.json", "GDCR regulation master file")
	serveCmd.Flags().StringVar(&serveOpts.Strategy, "strategy", "full", "zone store strategy: full or windowed")
	serveCmd.Flags().Float64Var(&serveOpts.Window, "window", zones.DefaultWindow, "windowed strategy bounding box half-width in degrees")
	serveCmd.Flags().StringVar(&serveOpts.Container, "container", "zones.duckdb", "zone container file for the windowed strategy")
	serveCmd.Flags().StringVar(&serveOpts.Credentials, "credentials", "serviceAccountKey.json", "service-account key file; empty disables /gdcr-by-doc")
	serveCmd.Flags().StringVar(&serveOpts.Collection, "collection", server.DefaultCollection, "document store collection")
	serveCmd.Flags().IntVar(&serveOpts.CacheRes, "h3-cache-res", 10, "H3 resolution for the lookup cache; 0 disables")

	rootCmd.AddCommand(serveCmd)
}

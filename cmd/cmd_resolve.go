// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/unjhamasala/gdcr-api/gdcr"
	"github.com/unjhamasala/gdcr-api/spatial"
	"github.com/unjhamasala/gdcr-api/zones"
)

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

type resolveOptions struct {
	Dataset     string
	DatasetURL  string
	Regulations string
}

var resolveOpts = &resolveOptions{}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve coordinates from stdin (dev tool)",
	Long: `Reads one "lat lon" pair per line and prints the lookup result as JSON.

$ echo "22.52 72.25" | gdcr-api resolve
{"zone":"Residential","base_fsi":1.8,"max_height_m":25,"permissible_use":"residential"}
`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		regs, err := gdcr.LoadRegulations(resolveOpts.Regulations)
		if err != nil {
			return fmt.Errorf("loading regulation table: %w", err)
		}

		if err := zones.EnsureDataset(resolveOpts.Dataset, resolveOpts.DatasetURL); err != nil {
			return fmt.Errorf("provisioning zone dataset: %w", err)
		}

		store, err := zones.OpenMemoryStore(resolveOpts.Dataset)
		if err != nil {
			return fmt.Errorf("loading zone dataset: %w", err)
		}

		resolver := gdcr.NewResolver(store, regs)

		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Enter coordinates to resolve, one \"lat lon\" pair per line…")
		}

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			var pt spatial.Point

			if _, err := fmt.Sscanf(scanner.Text(), "%f %f", &pt.Lat, &pt.Lng); err != nil {
				fmt.Printf("%s\t%q\n", scanner.Text(), err)

				continue
			}

			payload := resolvePayload(resolver, pt)

			if s, err := json.Marshal(payload); err == nil {
				fmt.Printf("%s\n", s)
			} else {
				log.Fatal(err)
			}
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		return nil
	},
}

func resolvePayload(resolver *gdcr.Resolver, pt spatial.Point) any {
	lookup, err := resolver.Resolve(pt)
	if err == nil {
		return lookup
	}

	var notFound *gdcr.RegulationNotFoundError
	if errors.As(err, &notFound) {
		return map[string]string{"zone": notFound.Zone, "error": notFound.Error()}
	}

	return map[string]string{"error": err.Error()}
}

func init() {
	resolveCmd.Flags().StringVar(&resolveOpts.Dataset, "dataset", "Lothal_zones.geojson", "zone dataset GeoJSON file")
	resolveCmd.Flags().StringVar(&resolveOpts.DatasetURL, "dataset-url", zones.DefaultDatasetURL, "URL to fetch the dataset from when absent")
	resolveCmd.Flags().StringVar(&resolveOpts.Regulations, "regulations", "gdcr_masterjson.json", "GDCR regulation master file")

	rootCmd.AddCommand(resolveCmd)
}

// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package zones

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultDatasetURL is where the released zone dataset is fetched from
// when no local copy exists.
const DefaultDatasetURL = "https://github.com/Unjhamasala/gdcr-api/releases/download/data-v1/Lothal_zones.geojson"

// EnsureDataset makes sure a local copy of the zone dataset exists at
// path, downloading it from url when absent. The download goes to a
// temporary file that is renamed into place only on success, so a failed
// transfer never leaves a partial dataset behind.
func EnsureDataset(path, url string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking dataset %s: %w", path, err)
	}

	log.Printf("Downloading zone dataset from %s", url)

	client := &http.Client{Timeout: 5 * time.Minute}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("downloading dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading dataset: unexpected status %s", resp.Status)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".gdcr-dataset-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return errors.Join(
			fmt.Errorf("writing dataset: %w", err),
			tmp.Close(),
			os.Remove(tmp.Name()),
		)
	}

	if err := tmp.Close(); err != nil {
		return errors.Join(
			fmt.Errorf("closing dataset: %w", err),
			os.Remove(tmp.Name()),
		)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(
			fmt.Errorf("moving dataset into place: %w", err),
			os.Remove(tmp.Name()),
		)
	}

	log.Printf("Zone dataset saved to %s", path)

	return nil
}

// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "gdcr-api",
	Short: "zoning and building-regulation lookups",
	Long: `
gdcr-api resolves a geographic coordinate to the zoning polygon that
contains it and returns the General Development Control Regulations for
that zone (floor-space index, height limit, permissible use). It serves
the lookups over HTTP and can write results back onto remote property
documents.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

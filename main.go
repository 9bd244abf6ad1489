// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/unjhamasala/gdcr-api/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}

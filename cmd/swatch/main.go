// Swatch - A ranked colour palette extractor
//
// Swatch samples an image, clusters its colours and prints a small palette
// of representative colours with their share of the image.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the gntree CLI application.
// gntree builds and queries a lineage tree index over a taxonomy.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

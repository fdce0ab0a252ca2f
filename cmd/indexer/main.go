package main

import (
	"os"

	"github.com/fbkclanna/indexer/internal/ui"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.NewConsole(os.Stdout, os.Stderr).Fatal(err)
		os.Exit(1)
	}
}

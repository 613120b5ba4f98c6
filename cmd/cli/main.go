// Package main is the entry point for the quote-engine CLI.
package main

import (
	"os"

	"quote-engine/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the entry point for the worthkeeping CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sjha2048/worthkeeping.app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the CLI entry point for mcpp.
package main

import (
	"os"

	"github.com/mcpplang/mcpp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

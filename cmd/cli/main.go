// Package main is the entry point for the webtoq-cost CLI.
package main

import (
	"os"

	"webtoq-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"crowdfund/internal/cli"
)

// main runs the crowdfund command tree. Errors are printed by cobra.
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

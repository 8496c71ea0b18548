// Package main provides the f1stats command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/f1stats/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

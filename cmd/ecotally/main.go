// Command ecotally is the personal carbon footprint CLI: it computes
// CO2-equivalent emissions from exported activity records, aggregates them
// by period, and compares the totals against reference baselines.
package main

import (
	"os"

	"github.com/mfleet/ecotally/internal/cli"
	"github.com/mfleet/ecotally/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps failure to exit code 1. Split from
// main for testability.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

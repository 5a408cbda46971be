package main

import (
	"log"
	"os"

	"github.com/honeycombio/resultgen"
	"github.com/jessevdk/go-flags"
)

func main() {
	cmdopts := &resultgen.XUnitOptions{}
	parser := flags.NewParser(cmdopts, flags.Default)
	parser.Usage = `[OPTIONS] [num-files [tests-per-file [failure-rate]]]

	xunitgen generates xUnit-schema XML report files for load testing
	pipelines that attach xunit results. Failed cases carry a nested failure
	element; suite-level totals always agree with the testcase elements.

	Example:
		xunitgen 100 50 0.1
		# generates 100 files with 50 tests each (5000 total), 10% failures
	`

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("error reading command line: %v", err)
	}

	resolved, done, err := resultgen.ResolveConfig(cmdopts, &resultgen.XUnitOptions{})
	if err != nil {
		log.Fatalf("unable to resolve config: %v", err)
	}
	if done {
		os.Exit(0)
	}
	opts := resolved.(*resultgen.XUnitOptions)

	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	if err := resultgen.NewXUnitGenerator(logger, opts).Run(opts.NumFiles()); err != nil {
		logger.Fatal("generating xunit files: %v\n", err)
	}
}

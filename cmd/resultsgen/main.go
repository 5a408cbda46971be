package main

import (
	"log"
	"os"

	"github.com/honeycombio/resultgen"
	"github.com/jessevdk/go-flags"
)

func main() {
	cmdopts := &resultgen.ResultsOptions{}
	parser := flags.NewParser(cmdopts, flags.Default)
	parser.Usage = `[OPTIONS] [num-tests [failure-rate [log-lines]]]

	resultsgen generates a single large test_results.json bundle for load
	testing pipelines that attach test results. Each entry carries a status,
	start/end timestamps, and a block of raw log text.

	Example:
		resultsgen 500 0.1 20
		# generates 500 test results, 10% failures, 20 log lines each
	`

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("error reading command line: %v", err)
	}

	resolved, done, err := resultgen.ResolveConfig(cmdopts, &resultgen.ResultsOptions{})
	if err != nil {
		log.Fatalf("unable to resolve config: %v", err)
	}
	if done {
		os.Exit(0)
	}
	opts := resolved.(*resultgen.ResultsOptions)

	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	if err := resultgen.NewResultsGenerator(logger, opts).Run(); err != nil {
		logger.Fatal("generating results file: %v\n", err)
	}
}

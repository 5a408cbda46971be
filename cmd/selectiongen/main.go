package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/honeycombio/resultgen"
	"github.com/jessevdk/go-flags"
)

func main() {
	cmdopts := &resultgen.SelectionOptions{}
	parser := flags.NewParser(cmdopts, flags.Default)
	parser.Usage = `[OPTIONS] <test-file>

	selectiongen reads a recommended-tests JSON file ({"tests": [{"name":
	...}]}) and writes test_selection_results.json reporting every
	recommended test as passed with zero duration.
	`

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("error reading command line: %v", err)
	}

	resolved, done, err := resultgen.ResolveConfig(cmdopts, &resultgen.SelectionOptions{})
	if err != nil {
		log.Fatalf("unable to resolve config: %v", err)
	}
	if done {
		os.Exit(0)
	}
	opts := resolved.(*resultgen.SelectionOptions)

	if opts.Args.TestFile == "" {
		fmt.Println("Usage: selectiongen <test-file>")
		os.Exit(1)
	}

	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	n, err := resultgen.GenerateSelectionResults(opts.Args.TestFile, opts.OutputDir())
	if err != nil {
		logger.Fatal("generating selection results: %v\n", err)
	}
	logger.Info("wrote %d results to %s\n", n, filepath.Join(opts.OutputDir(), resultgen.SelectionResultsFile))
}

package main

import (
	"log"
	"os"

	"github.com/honeycombio/resultgen"
	"github.com/jessevdk/go-flags"
)

func main() {
	cmdopts := &resultgen.SuiteOptions{}
	parser := flags.NewParser(cmdopts, flags.Default)
	parser.Usage = `[OPTIONS] [num-files [tests-per-file [failure-rate]]]

	suitegen generates files that imitate the console output of 'go test -v'
	runs, for load testing pipelines that parse test transcripts. Each file
	holds one module's worth of tests and ends with a PASS/FAIL summary token
	and a module timing line.

	Example:
		suitegen 10 100 0.1
		# generates 10 files with 100 tests each (1000 total), 10% failures
	`

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("error reading command line: %v", err)
	}

	resolved, done, err := resultgen.ResolveConfig(cmdopts, &resultgen.SuiteOptions{})
	if err != nil {
		log.Fatalf("unable to resolve config: %v", err)
	}
	if done {
		os.Exit(0)
	}
	opts := resolved.(*resultgen.SuiteOptions)

	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	if err := resultgen.NewSuiteGenerator(logger, opts).Run(opts.NumFiles()); err != nil {
		logger.Fatal("generating suite files: %v\n", err)
	}
}

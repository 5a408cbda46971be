package main

import (
	"log"
	"os"

	"github.com/honeycombio/resultgen"
	"github.com/jessevdk/go-flags"
)

func main() {
	cmdopts := &resultgen.TraceOptions{}
	parser := flags.NewParser(cmdopts, flags.Default)
	parser.Usage = `[OPTIONS] [num-files [spans-per-file]]

	tracegen generates .jsonl trace files where each line is an OTLP-style
	JSON export document (resourceSpans -> scopeSpans -> spans), for load
	testing trace-upload pipelines. With --host, every document is also
	POSTed to the given OTLP/HTTP endpoint as it is generated.

	Example:
		tracegen 10 100
		# generates 10 trace files with ~100 spans each
	`

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("error reading command line: %v", err)
	}

	resolved, done, err := resultgen.ResolveConfig(cmdopts, &resultgen.TraceOptions{})
	if err != nil {
		log.Fatalf("unable to resolve config: %v", err)
	}
	if done {
		os.Exit(0)
	}
	opts := resolved.(*resultgen.TraceOptions)

	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	gen, err := resultgen.NewTraceGenerator(logger, opts)
	if err != nil {
		logger.Fatal("configuring trace generator: %v\n", err)
	}
	if err := gen.Run(opts.NumFiles(), opts.SpansPerFile()); err != nil {
		logger.Fatal("generating trace files: %v\n", err)
	}
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/honeycombio/resultgen"
	"github.com/jessevdk/go-flags"
)

type suiteCommand struct {
	resultgen.SuiteOptions
}

func (c *suiteCommand) Execute(args []string) error {
	resolved, done, err := resultgen.ResolveConfig(&c.SuiteOptions, &resultgen.SuiteOptions{})
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	opts := resolved.(*resultgen.SuiteOptions)
	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	return resultgen.NewSuiteGenerator(logger, opts).Run(opts.NumFiles())
}

type resultsCommand struct {
	resultgen.ResultsOptions
}

func (c *resultsCommand) Execute(args []string) error {
	resolved, done, err := resultgen.ResolveConfig(&c.ResultsOptions, &resultgen.ResultsOptions{})
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	opts := resolved.(*resultgen.ResultsOptions)
	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	return resultgen.NewResultsGenerator(logger, opts).Run()
}

type selectionCommand struct {
	resultgen.SelectionOptions
}

func (c *selectionCommand) Execute(args []string) error {
	resolved, done, err := resultgen.ResolveConfig(&c.SelectionOptions, &resultgen.SelectionOptions{})
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	opts := resolved.(*resultgen.SelectionOptions)
	if opts.Args.TestFile == "" {
		fmt.Println("Usage: resultgen selection <test-file>")
		os.Exit(1)
	}
	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	n, err := resultgen.GenerateSelectionResults(opts.Args.TestFile, opts.OutputDir())
	if err != nil {
		return err
	}
	logger.Info("wrote %d results to %s\n", n, filepath.Join(opts.OutputDir(), resultgen.SelectionResultsFile))
	return nil
}

type xunitCommand struct {
	resultgen.XUnitOptions
}

func (c *xunitCommand) Execute(args []string) error {
	resolved, done, err := resultgen.ResolveConfig(&c.XUnitOptions, &resultgen.XUnitOptions{})
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	opts := resolved.(*resultgen.XUnitOptions)
	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	return resultgen.NewXUnitGenerator(logger, opts).Run(opts.NumFiles())
}

type tracesCommand struct {
	resultgen.TraceOptions
}

func (c *tracesCommand) Execute(args []string) error {
	resolved, done, err := resultgen.ResolveConfig(&c.TraceOptions, &resultgen.TraceOptions{})
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	opts := resolved.(*resultgen.TraceOptions)
	logger := resultgen.NewLogger(opts.Global.DebugLevel())
	gen, err := resultgen.NewTraceGenerator(logger, opts)
	if err != nil {
		return err
	}
	return gen.Run(opts.NumFiles(), opts.SpansPerFile())
}

func main() {
	parser := flags.NewParser(nil, flags.Default)
	parser.Usage = `<command> [OPTIONS]

	resultgen synthesizes fake test-result artifacts (go test transcripts,
	JSON result bundles, xUnit XML reports, OTLP-style trace files) for load
	testing result-ingestion pipelines. Each subcommand is also available as
	a standalone binary taking the same positional arguments.
	`

	addCommand := func(name, short, long string, cmd interface{}) {
		if _, err := parser.AddCommand(name, short, long, cmd); err != nil {
			log.Fatalf("registering %s command: %v", name, err)
		}
	}
	addCommand("suite", "generate go test transcript files",
		"Generate .suite files imitating 'go test -v' console output.", &suiteCommand{})
	addCommand("results", "generate a bulk JSON results file",
		"Generate a single large test_results.json bundle.", &resultsCommand{})
	addCommand("selection", "generate selection results from a recommended-tests file",
		"Read a recommended-tests JSON file and write test_selection_results.json.", &selectionCommand{})
	addCommand("xunit", "generate xUnit XML report files",
		"Generate junit-NNNN.xml files with consistent suite-level totals.", &xunitCommand{})
	addCommand("traces", "generate OTLP-style trace files",
		"Generate traces_NNNN.jsonl files, optionally uploading each payload.", &tracesCommand{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("error reading command line: %v", err)
	}
}

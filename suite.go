package resultgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SuiteGenerator writes files that imitate the console transcript of a
// `go test -v` run, one module per file. Each file ends with a PASS or FAIL
// summary token (FAIL whenever at least one test failed) and a synthetic
// module timing line, which is what transcript parsers key on.
type SuiteGenerator struct {
	testsPerFile int
	failureRate  float64
	outdir       string
	rng          Rng
	log          Logger
}

func NewSuiteGenerator(log Logger, opts *SuiteOptions) *SuiteGenerator {
	return &SuiteGenerator{
		testsPerFile: opts.TestsPerFile(),
		failureRate:  opts.FailureRate(),
		outdir:       opts.OutputDir(),
		rng:          NewRng(opts.Global.Seed),
		log:          log,
	}
}

// testOutput renders the transcript block for a single test.
func (g *SuiteGenerator) testOutput(moduleName string, testNum int, fail bool) string {
	testName := fmt.Sprintf("Test%s_Case%04d", title(moduleName), testNum)
	duration := g.rng.Float(0.001, 0.5)

	var b strings.Builder
	fmt.Fprintf(&b, "=== RUN   %s\n", testName)
	nlines := g.rng.Int(2, 9)
	for i := 0; i < nlines; i++ {
		fmt.Fprintf(&b, "    %s: log line %d: processing step %d\n", testName, i+1, i+1)
	}
	status := "PASS"
	if fail {
		fmt.Fprintf(&b, "    %s: assertion failed\n", testName)
		fmt.Fprintf(&b, "        Expected: %d\n", g.rng.Int(1, 101))
		fmt.Fprintf(&b, "        Actual: %d\n", g.rng.Int(1, 101))
		status = "FAIL"
	}
	fmt.Fprintf(&b, "--- %s: %s (%.3fs)", status, testName, duration)
	return b.String()
}

// GenerateFile writes a single .suite file and returns the number of tests
// and failures it contains.
func (g *SuiteGenerator) GenerateFile(fileNum int) (tests, failures int, err error) {
	moduleName := fmt.Sprintf("module_%04d", fileNum)

	blocks := make([]string, 0, g.testsPerFile+2)
	for testNum := 0; testNum < g.testsPerFile; testNum++ {
		fail := g.rng.Roll(g.failureRate)
		blocks = append(blocks, g.testOutput(moduleName, testNum, fail))
		if fail {
			failures++
		}
	}

	if failures > 0 {
		blocks = append(blocks, "FAIL")
	} else {
		blocks = append(blocks, "PASS")
	}
	blocks = append(blocks, fmt.Sprintf("ok  \tgithub.com/test/%s\t%.3fs", moduleName, g.rng.Float(0.5, 5.0)))

	filename := filepath.Join(g.outdir, moduleName+".suite")
	if err := os.WriteFile(filename, []byte(strings.Join(blocks, "\n")), 0644); err != nil {
		return 0, 0, err
	}
	return g.testsPerFile, failures, nil
}

// Run generates numFiles suite files, logging progress along the way and a
// final summary when done.
func (g *SuiteGenerator) Run(numFiles int) error {
	g.log.Info("Generating %d go test suite files with %d tests each...\n", numFiles, g.testsPerFile)
	g.log.Info("Total tests: %d\n", numFiles*g.testsPerFile)
	g.log.Info("Expected failures: ~%d\n\n", int(float64(numFiles*g.testsPerFile)*g.failureRate))

	if err := os.MkdirAll(g.outdir, 0755); err != nil {
		return err
	}

	start := time.Now()
	totalTests := 0
	totalFailures := 0
	for fileNum := 0; fileNum < numFiles; fileNum++ {
		tests, failures, err := g.GenerateFile(fileNum)
		if err != nil {
			return err
		}
		totalTests += tests
		totalFailures += failures
		if (fileNum+1)%5 == 0 {
			g.log.Info("  Generated %d/%d files...\n", fileNum+1, numFiles)
		}
	}

	g.log.Info("\nDone! Generated %d files in %.2fs\n", numFiles, time.Since(start).Seconds())
	g.log.Info("Total tests: %d\n", totalTests)
	g.log.Info("Total failures: %d\n", totalFailures)
	return nil
}

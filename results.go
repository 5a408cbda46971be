package resultgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ResultsFileName is the fixed name of the bulk results bundle.
const ResultsFileName = "test_results.json"

// resultsBaseTime staggers the synthetic start timestamps from a fixed epoch
// so that records sort stably regardless of when the generator runs.
const resultsBaseTime = 1700000000.0

var logLevels = []string{"INFO", "DEBUG", "TRACE"}

// TestResult is one entry in the results bundle.
type TestResult struct {
	TestFile string  `json:"test_file"`
	Status   string  `json:"status"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	LogRaw   string  `json:"log_raw"`
}

// ResultsFile is the top-level shape of test_results.json.
type ResultsFile struct {
	Results []TestResult `json:"results"`
}

// ResultsGenerator writes a single large test_results.json bundle with one
// entry per synthetic test, each carrying a block of raw log text.
type ResultsGenerator struct {
	numTests    int
	failureRate float64
	logLines    int
	outdir      string
	rng         Rng
	log         Logger
}

func NewResultsGenerator(log Logger, opts *ResultsOptions) *ResultsGenerator {
	return &ResultsGenerator{
		numTests:    opts.NumTests(),
		failureRate: opts.FailureRate(),
		logLines:    opts.LogLines(),
		outdir:      opts.OutputDir(),
		rng:         NewRng(opts.Global.Seed),
		log:         log,
	}
}

// logContent builds the raw log text for one test: a header, step lines at
// random levels, an assertion block when the test failed, and a footer.
func (g *ResultsGenerator) logContent(testName string, failed bool) string {
	lines := make([]string, 0, g.logLines)
	lines = append(lines, fmt.Sprintf("=== Starting test: %s ===", testName))
	lines = append(lines, fmt.Sprintf("Test configuration loaded at %s", time.Now().Format("2006-01-02 15:04:05")))

	for i := 0; i < g.logLines-4; i++ {
		if failed && i == g.logLines-6 {
			lines = append(lines, fmt.Sprintf("ERROR: Assertion failed at line %d", g.rng.Int(50, 201)))
			lines = append(lines, fmt.Sprintf("  Expected: %d", g.rng.Int(1, 101)))
			lines = append(lines, fmt.Sprintf("  Actual: %d", g.rng.Int(1, 101)))
		} else {
			lines = append(lines, fmt.Sprintf("[%s] Processing step %d: operation completed successfully", g.rng.Choice(logLevels), i+1))
		}
	}

	status := "PASSED"
	if failed {
		status = "FAILED"
	}
	lines = append(lines, fmt.Sprintf("=== Test %s %s ===", testName, status))
	return strings.Join(lines, "\n")
}

// Result generates a single test result record.
func (g *ResultsGenerator) Result(testNum int) TestResult {
	moduleName := fmt.Sprintf("module_%03d", testNum/100)
	testName := fmt.Sprintf("test_%s.Test%sSuite.test_case_%05d", moduleName, title(moduleName), testNum)

	failed := g.rng.Roll(g.failureRate)
	status := "pass"
	if failed {
		status = "fail"
	}

	start := resultsBaseTime + float64(testNum)*0.5
	end := start + g.rng.Float(0.1, 2.0)

	return TestResult{
		TestFile: testName,
		Status:   status,
		Start:    start,
		End:      end,
		LogRaw:   g.logContent(testName, failed),
	}
}

// Run generates the full bundle and writes it to test_results.json in the
// output directory.
func (g *ResultsGenerator) Run() error {
	g.log.Info("Generating results file with %d tests...\n", g.numTests)
	g.log.Info("Expected failures: ~%d\n", int(float64(g.numTests)*g.failureRate))
	g.log.Info("Log lines per test: %d\n\n", g.logLines)

	if err := os.MkdirAll(g.outdir, 0755); err != nil {
		return err
	}

	start := time.Now()
	out := ResultsFile{Results: make([]TestResult, 0, g.numTests)}
	failures := 0

	for testNum := 0; testNum < g.numTests; testNum++ {
		result := g.Result(testNum)
		out.Results = append(out.Results, result)
		if result.Status == "fail" {
			failures++
		}
		if (testNum+1)%100 == 0 {
			g.log.Info("  Generated %d/%d results...\n", testNum+1, g.numTests)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	filename := filepath.Join(g.outdir, ResultsFileName)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	g.log.Info("\nDone! Generated %d test results in %.2fs\n", g.numTests, time.Since(start).Seconds())
	g.log.Info("Total failures: %d\n", failures)
	g.log.Info("Output file: %s (%.2f MB)\n", filename, float64(len(data))/1024/1024)
	return nil
}

package resultgen

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// XUnitTestSuite is the document element of one report file. The tests and
// failures attributes always agree with the testcase elements inside it.
type XUnitTestSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []XUnitTestCase `xml:"testcase"`
}

type XUnitTestCase struct {
	ClassName string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *XUnitFailure `xml:"failure,omitempty"`
}

type XUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// XUnitGenerator writes xUnit-schema XML report files, the kind most CI
// dashboards ingest.
type XUnitGenerator struct {
	testsPerFile int
	failureRate  float64
	outdir       string
	rng          Rng
	log          Logger
}

func NewXUnitGenerator(log Logger, opts *XUnitOptions) *XUnitGenerator {
	return &XUnitGenerator{
		testsPerFile: opts.TestsPerFile(),
		failureRate:  opts.FailureRate(),
		outdir:       opts.OutputDir(),
		rng:          NewRng(opts.Global.Seed),
		log:          log,
	}
}

// GenerateFile writes a single junit-NNNN.xml file and returns the number of
// tests and failures it contains.
func (g *XUnitGenerator) GenerateFile(fileNum int) (tests, failures int, err error) {
	moduleName := fmt.Sprintf("module_%04d", fileNum)
	suiteName := fmt.Sprintf("test_%s.Test%sSuite", moduleName, title(moduleName))

	suite := XUnitTestSuite{Name: suiteName}
	totalTime := 0.0

	for testNum := 0; testNum < g.testsPerFile; testNum++ {
		duration := g.rng.Float(0.001, 0.5)
		totalTime += duration
		tc := XUnitTestCase{
			ClassName: suiteName,
			Name:      fmt.Sprintf("test_%s_case_%04d", moduleName, testNum),
			Time:      fmt.Sprintf("%.3f", duration),
		}
		if g.rng.Roll(g.failureRate) {
			tc.Failure = &XUnitFailure{
				Message: "Test failed",
				Type:    "AssertionError",
				Body: fmt.Sprintf("\nAssertionError: expected value did not match actual value.\nExpected: %d\nActual: %d\n    ",
					g.rng.Int(1, 101), g.rng.Int(1, 101)),
			}
			suite.Failures++
		}
		suite.Cases = append(suite.Cases, tc)
	}
	suite.Tests = len(suite.Cases)
	suite.Time = fmt.Sprintf("%.3f", totalTime)

	buf, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return 0, 0, err
	}
	filename := filepath.Join(g.outdir, fmt.Sprintf("junit-%04d.xml", fileNum))
	if err := os.WriteFile(filename, []byte(xml.Header+string(buf)+"\n"), 0644); err != nil {
		return 0, 0, err
	}
	return suite.Tests, suite.Failures, nil
}

// Run generates numFiles report files, logging progress along the way and a
// final summary when done.
func (g *XUnitGenerator) Run(numFiles int) error {
	g.log.Info("Generating %d xunit files with %d tests each...\n", numFiles, g.testsPerFile)
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
		if (fileNum+1)%10 == 0 {
			g.log.Info("  Generated %d/%d files...\n", fileNum+1, numFiles)
		}
	}

	g.log.Info("\nDone! Generated %d files in %.2fs\n", numFiles, time.Since(start).Seconds())
	g.log.Info("Total tests: %d\n", totalTests)
	g.log.Info("Total failures: %d\n", totalFailures)
	return nil
}

package resultgen

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xunitOptions(dir string, files, tests int, rate float64) *XUnitOptions {
	opts := &XUnitOptions{}
	opts.Global.Output = dir
	opts.Global.Seed = "xunit-test"
	opts.Args.NumFiles = intp(files)
	opts.Args.TestsPerFile = intp(tests)
	opts.Args.FailureRate = floatp(rate)
	return opts
}

func readSuite(t *testing.T, filename string) XUnitTestSuite {
	t.Helper()
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml version="), "missing XML declaration")

	var suite XUnitTestSuite
	require.NoError(t, xml.Unmarshal(data, &suite))
	return suite
}

func TestXUnitGenerator_NoFailures(t *testing.T) {
	dir := t.TempDir()
	opts := xunitOptions(dir, 2, 3, 0.0)
	require.NoError(t, NewXUnitGenerator(quietLogger(), opts).Run(2))

	files, err := filepath.Glob(filepath.Join(dir, "junit-*.xml"))
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		suite := readSuite(t, f)
		assert.Equal(t, 3, suite.Tests)
		assert.Len(t, suite.Cases, 3)
		assert.Zero(t, suite.Failures)
		assert.Zero(t, suite.Errors)
		for _, tc := range suite.Cases {
			assert.Nil(t, tc.Failure)
		}
	}
}

func TestXUnitGenerator_AllFailures(t *testing.T) {
	dir := t.TempDir()
	opts := xunitOptions(dir, 1, 4, 1.0)
	require.NoError(t, NewXUnitGenerator(quietLogger(), opts).Run(1))

	suite := readSuite(t, filepath.Join(dir, "junit-0000.xml"))
	assert.Equal(t, 4, suite.Tests)
	assert.Equal(t, 4, suite.Failures)
	for _, tc := range suite.Cases {
		require.NotNil(t, tc.Failure)
		assert.Equal(t, "Test failed", tc.Failure.Message)
		assert.Equal(t, "AssertionError", tc.Failure.Type)
		assert.Contains(t, tc.Failure.Body, "Expected:")
	}
}

func TestXUnitGenerator_TotalsAgreeWithCases(t *testing.T) {
	dir := t.TempDir()
	opts := xunitOptions(dir, 5, 20, 0.5)
	require.NoError(t, NewXUnitGenerator(quietLogger(), opts).Run(5))

	files, err := filepath.Glob(filepath.Join(dir, "junit-*.xml"))
	require.NoError(t, err)
	require.Len(t, files, 5)

	for _, f := range files {
		suite := readSuite(t, f)
		assert.Equal(t, len(suite.Cases), suite.Tests)

		withFailure := 0
		for _, tc := range suite.Cases {
			if tc.Failure != nil {
				withFailure++
			}
		}
		assert.Equal(t, withFailure, suite.Failures)
	}
}

func TestXUnitGenerator_Naming(t *testing.T) {
	dir := t.TempDir()
	opts := xunitOptions(dir, 1, 2, 0.0)
	require.NoError(t, NewXUnitGenerator(quietLogger(), opts).Run(1))

	suite := readSuite(t, filepath.Join(dir, "junit-0000.xml"))
	assert.Equal(t, "test_module_0000.TestModule_0000Suite", suite.Name)
	assert.Equal(t, "test_module_0000_case_0000", suite.Cases[0].Name)
	assert.Equal(t, suite.Name, suite.Cases[0].ClassName)
}

package resultgen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func quietLogger() Logger       { return NewLogger(0) }

func TestOptionDefaults(t *testing.T) {
	suite := &SuiteOptions{}
	assert.Equal(t, 10, suite.NumFiles())
	assert.Equal(t, 100, suite.TestsPerFile())
	assert.Equal(t, 0.1, suite.FailureRate())
	assert.Equal(t, ".", suite.OutputDir())

	results := &ResultsOptions{}
	assert.Equal(t, 500, results.NumTests())
	assert.Equal(t, 0.1, results.FailureRate())
	assert.Equal(t, 20, results.LogLines())

	xunit := &XUnitOptions{}
	assert.Equal(t, 100, xunit.NumFiles())
	assert.Equal(t, 50, xunit.TestsPerFile())
	assert.Equal(t, 0.1, xunit.FailureRate())

	traces := &TraceOptions{}
	assert.Equal(t, 10, traces.NumFiles())
	assert.Equal(t, 100, traces.SpansPerFile())
	assert.Equal(t, "build/OTelTraces", traces.OutputDir())
}

func TestOptionOverrides(t *testing.T) {
	opts := &SuiteOptions{}
	opts.Args.NumFiles = intp(2)
	opts.Args.TestsPerFile = intp(3)
	opts.Args.FailureRate = floatp(0.0)
	opts.Global.Output = "/tmp/out"

	assert.Equal(t, 2, opts.NumFiles())
	assert.Equal(t, 3, opts.TestsPerFile())
	assert.Equal(t, 0.0, opts.FailureRate())
	assert.Equal(t, "/tmp/out", opts.OutputDir())
}

func TestDebugLevel(t *testing.T) {
	for level, want := range map[string]int{
		"debug": 3,
		"info":  2,
		"warn":  1,
		"error": 0,
		"":      0,
	} {
		opts := GlobalOptions{LogLevel: level}
		assert.Equal(t, want, opts.DebugLevel())
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("no config file leaves command-line options alone", func(t *testing.T) {
		cmdopts := &SuiteOptions{}
		cmdopts.Global.Seed = "cli"
		resolved, done, err := ResolveConfig(cmdopts, &SuiteOptions{})
		require.NoError(t, err)
		assert.False(t, done)
		assert.Same(t, cmdopts, resolved)
	})

	t.Run("config file wins except starred options and explicit positionals", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "config.yml")
		fileopts := &SuiteOptions{}
		fileopts.Global.Output = "from-file"
		fileopts.Global.Seed = "from-file"
		fileopts.Args.TestsPerFile = intp(42)
		require.NoError(t, WriteConfig(fileopts, filename))

		cmdopts := &SuiteOptions{}
		cmdopts.Global.Config = filename
		cmdopts.Global.Seed = "from-cli"
		cmdopts.Args.NumFiles = intp(3)

		resolved, done, err := ResolveConfig(cmdopts, &SuiteOptions{})
		require.NoError(t, err)
		assert.False(t, done)

		opts := resolved.(*SuiteOptions)
		assert.Equal(t, "from-file", opts.Global.Output)
		assert.Equal(t, "from-file", opts.Global.Seed)
		assert.Equal(t, filename, opts.Global.Config)
		assert.Equal(t, 3, opts.NumFiles(), "explicit positionals override the file")
		assert.Equal(t, 42, opts.TestsPerFile(), "file positionals survive when not overridden")
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		cmdopts := &SuiteOptions{}
		cmdopts.Global.Config = filepath.Join(t.TempDir(), "nope.yml")
		_, _, err := ResolveConfig(cmdopts, &SuiteOptions{})
		assert.Error(t, err)
	})

	t.Run("writecfg writes the effective config and quits", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "effective.yml")
		cmdopts := &XUnitOptions{}
		cmdopts.Global.Seed = "fixed"
		cmdopts.Global.WriteCfg = out

		_, done, err := ResolveConfig(cmdopts, &XUnitOptions{})
		require.NoError(t, err)
		assert.True(t, done, "caller should quit without generating")

		loaded := &XUnitOptions{}
		require.NoError(t, ReadConfig(loaded, out))
		assert.Equal(t, "fixed", loaded.Global.Seed)
	})
}

func TestConfigRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")

	opts := &XUnitOptions{}
	opts.Global.Output = "reports"
	opts.Global.Seed = "fixed"
	opts.Args.NumFiles = intp(7)
	require.NoError(t, WriteConfig(opts, filename))

	loaded := &XUnitOptions{}
	require.NoError(t, ReadConfig(loaded, filename))
	assert.Equal(t, "reports", loaded.Global.Output)
	assert.Equal(t, "fixed", loaded.Global.Seed)
	require.NotNil(t, loaded.Args.NumFiles)
	assert.Equal(t, 7, *loaded.Args.NumFiles)
}

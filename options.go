package resultgen

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// GlobalOptions are the flags shared by every generator command. The options
// marked with (*) in the help text cannot be set from a config file.
type GlobalOptions struct {
	Output   string `long:"output" description:"directory to write generated files into (defaults to the current directory)" yaml:",omitempty"`
	Seed     string `long:"seed" description:"string seed for the random number generator (empty means seed from the clock)" yaml:",omitempty"`
	LogLevel string `long:"loglevel" description:"level of logging" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Config   string `long:"config" description:"name of config file to load(*)" default:"" yaml:"-"`
	WriteCfg string `long:"writecfg" description:"write effective YAML config to the specified output file and quit(*)" default:"" yaml:"-"`
}

// DebugLevel maps the loglevel choice onto the logger's numeric level. The
// zero value maps to errors-only, so a config file without a loglevel key
// suppresses all progress output.
func (o *GlobalOptions) DebugLevel() int {
	switch o.LogLevel {
	case "debug":
		return 3
	case "info":
		return 2
	case "warn":
		return 1
	default:
		return 0
	}
}

// SuiteOptions configures the go-test transcript generator. The positional
// arguments are all optional and default to 10 files of 100 tests with a 10%
// failure rate, matching a modest parser load test.
type SuiteOptions struct {
	Global GlobalOptions `group:"Global Options" yaml:"global"`
	Args   struct {
		NumFiles     *int     `positional-arg-name:"num-files" description:"number of .suite files to generate (default 10)" yaml:"num_files,omitempty"`
		TestsPerFile *int     `positional-arg-name:"tests-per-file" description:"number of test cases per file (default 100)" yaml:"tests_per_file,omitempty"`
		FailureRate  *float64 `positional-arg-name:"failure-rate" description:"fraction of tests that should fail, 0.0-1.0 (default 0.1)" yaml:"failure_rate,omitempty"`
	} `positional-args:"yes" yaml:"args"`
}

func (o *SuiteOptions) NumFiles() int        { return intOr(o.Args.NumFiles, 10) }
func (o *SuiteOptions) TestsPerFile() int    { return intOr(o.Args.TestsPerFile, 100) }
func (o *SuiteOptions) FailureRate() float64 { return floatOr(o.Args.FailureRate, 0.1) }
func (o *SuiteOptions) OutputDir() string    { return stringOr(o.Global.Output, ".") }

func (o *SuiteOptions) GlobalOpts() *GlobalOptions { return &o.Global }

func (o *SuiteOptions) CopyCommandLine(from Configurable) {
	cmd := from.(*SuiteOptions)
	if cmd.Args.NumFiles != nil {
		o.Args.NumFiles = cmd.Args.NumFiles
	}
	if cmd.Args.TestsPerFile != nil {
		o.Args.TestsPerFile = cmd.Args.TestsPerFile
	}
	if cmd.Args.FailureRate != nil {
		o.Args.FailureRate = cmd.Args.FailureRate
	}
	o.Global.Config = cmd.Global.Config
	o.Global.WriteCfg = cmd.Global.WriteCfg
}

// ResultsOptions configures the bulk JSON results generator.
type ResultsOptions struct {
	Global GlobalOptions `group:"Global Options" yaml:"global"`
	Args   struct {
		NumTests    *int     `positional-arg-name:"num-tests" description:"number of test results to generate (default 500)" yaml:"num_tests,omitempty"`
		FailureRate *float64 `positional-arg-name:"failure-rate" description:"fraction of tests that should fail, 0.0-1.0 (default 0.1)" yaml:"failure_rate,omitempty"`
		LogLines    *int     `positional-arg-name:"log-lines" description:"number of lines in each test's log_raw (default 20)" yaml:"log_lines,omitempty"`
	} `positional-args:"yes" yaml:"args"`
}

func (o *ResultsOptions) NumTests() int        { return intOr(o.Args.NumTests, 500) }
func (o *ResultsOptions) FailureRate() float64 { return floatOr(o.Args.FailureRate, 0.1) }
func (o *ResultsOptions) LogLines() int        { return intOr(o.Args.LogLines, 20) }
func (o *ResultsOptions) OutputDir() string    { return stringOr(o.Global.Output, ".") }

func (o *ResultsOptions) GlobalOpts() *GlobalOptions { return &o.Global }

func (o *ResultsOptions) CopyCommandLine(from Configurable) {
	cmd := from.(*ResultsOptions)
	if cmd.Args.NumTests != nil {
		o.Args.NumTests = cmd.Args.NumTests
	}
	if cmd.Args.FailureRate != nil {
		o.Args.FailureRate = cmd.Args.FailureRate
	}
	if cmd.Args.LogLines != nil {
		o.Args.LogLines = cmd.Args.LogLines
	}
	o.Global.Config = cmd.Global.Config
	o.Global.WriteCfg = cmd.Global.WriteCfg
}

// SelectionOptions configures the selection-results generator, whose one
// positional argument (the recommended-tests file) is required.
type SelectionOptions struct {
	Global GlobalOptions `group:"Global Options" yaml:"global"`
	Args   struct {
		TestFile string `positional-arg-name:"test-file" description:"JSON file holding the recommended tests" yaml:"test_file,omitempty"`
	} `positional-args:"yes" yaml:"args"`
}

func (o *SelectionOptions) OutputDir() string { return stringOr(o.Global.Output, ".") }

func (o *SelectionOptions) GlobalOpts() *GlobalOptions { return &o.Global }

func (o *SelectionOptions) CopyCommandLine(from Configurable) {
	cmd := from.(*SelectionOptions)
	if cmd.Args.TestFile != "" {
		o.Args.TestFile = cmd.Args.TestFile
	}
	o.Global.Config = cmd.Global.Config
	o.Global.WriteCfg = cmd.Global.WriteCfg
}

// XUnitOptions configures the xUnit XML report generator.
type XUnitOptions struct {
	Global GlobalOptions `group:"Global Options" yaml:"global"`
	Args   struct {
		NumFiles     *int     `positional-arg-name:"num-files" description:"number of XML files to generate (default 100)" yaml:"num_files,omitempty"`
		TestsPerFile *int     `positional-arg-name:"tests-per-file" description:"number of test cases per file (default 50)" yaml:"tests_per_file,omitempty"`
		FailureRate  *float64 `positional-arg-name:"failure-rate" description:"fraction of tests that should fail, 0.0-1.0 (default 0.1)" yaml:"failure_rate,omitempty"`
	} `positional-args:"yes" yaml:"args"`
}

func (o *XUnitOptions) NumFiles() int        { return intOr(o.Args.NumFiles, 100) }
func (o *XUnitOptions) TestsPerFile() int    { return intOr(o.Args.TestsPerFile, 50) }
func (o *XUnitOptions) FailureRate() float64 { return floatOr(o.Args.FailureRate, 0.1) }
func (o *XUnitOptions) OutputDir() string    { return stringOr(o.Global.Output, ".") }

func (o *XUnitOptions) GlobalOpts() *GlobalOptions { return &o.Global }

func (o *XUnitOptions) CopyCommandLine(from Configurable) {
	cmd := from.(*XUnitOptions)
	if cmd.Args.NumFiles != nil {
		o.Args.NumFiles = cmd.Args.NumFiles
	}
	if cmd.Args.TestsPerFile != nil {
		o.Args.TestsPerFile = cmd.Args.TestsPerFile
	}
	if cmd.Args.FailureRate != nil {
		o.Args.FailureRate = cmd.Args.FailureRate
	}
	o.Global.Config = cmd.Global.Config
	o.Global.WriteCfg = cmd.Global.WriteCfg
}

// TraceOptions configures the OTLP-style trace file generator. Unlike the
// other generators it defaults its output directory to build/OTelTraces,
// which is where the ingestion agent picks trace files up from.
type TraceOptions struct {
	Global GlobalOptions `group:"Global Options" yaml:"global"`
	Upload struct {
		Host     string `long:"host" description:"if set, also POST each trace payload to this OTLP/HTTP endpoint" yaml:",omitempty"`
		Insecure bool   `long:"insecure" description:"use this for insecure http (not https) connections" yaml:",omitempty"`
	} `group:"Upload Options" yaml:"upload"`
	SpansPerObject int `long:"spansperobject" description:"number of spans in each JSON line" default:"275" yaml:"spans_per_object"`
	Args           struct {
		NumFiles     *int `positional-arg-name:"num-files" description:"number of trace files to generate (default 10)" yaml:"num_files,omitempty"`
		SpansPerFile *int `positional-arg-name:"spans-per-file" description:"number of spans per file (default 100)" yaml:"spans_per_file,omitempty"`
	} `positional-args:"yes" yaml:"args"`
}

func (o *TraceOptions) NumFiles() int     { return intOr(o.Args.NumFiles, 10) }
func (o *TraceOptions) SpansPerFile() int { return intOr(o.Args.SpansPerFile, 100) }
func (o *TraceOptions) OutputDir() string { return stringOr(o.Global.Output, "build/OTelTraces") }

func (o *TraceOptions) GlobalOpts() *GlobalOptions { return &o.Global }

func (o *TraceOptions) CopyCommandLine(from Configurable) {
	cmd := from.(*TraceOptions)
	if cmd.Args.NumFiles != nil {
		o.Args.NumFiles = cmd.Args.NumFiles
	}
	if cmd.Args.SpansPerFile != nil {
		o.Args.SpansPerFile = cmd.Args.SpansPerFile
	}
	o.Global.Config = cmd.Global.Config
	o.Global.WriteCfg = cmd.Global.WriteCfg
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func stringOr(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

// Configurable is implemented by every generator option struct so the
// config-file convention can be applied the same way in every binary.
type Configurable interface {
	GlobalOpts() *GlobalOptions
	// CopyCommandLine copies the starred options from another instance of
	// the same options type, plus any positional arguments that were set.
	CopyCommandLine(from Configurable)
}

// ResolveConfig applies the config-file convention shared by all generator
// commands. When --config is set, options come from the named file instead of
// the command line, except that the starred options always come from the
// command line and explicit command-line positionals override the file's.
// When --writecfg is set the effective config is written out and done is
// true; the caller should quit without generating anything. fileopts must be
// a fresh instance of cmdopts's type.
func ResolveConfig(cmdopts, fileopts Configurable) (opts Configurable, done bool, err error) {
	opts = cmdopts
	if cmdopts.GlobalOpts().Config != "" {
		if err := ReadConfig(fileopts, cmdopts.GlobalOpts().Config); err != nil {
			return nil, false, err
		}
		fileopts.CopyCommandLine(cmdopts)
		opts = fileopts
	}
	if opts.GlobalOpts().WriteCfg != "" {
		if err := WriteConfig(opts, opts.GlobalOpts().WriteCfg); err != nil {
			return nil, false, err
		}
		return opts, true, nil
	}
	return opts, false, nil
}

func ReadConfig(opts interface{}, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(opts); err != nil {
		return err
	}
	log.Printf("read config from %s\n", filename)
	return nil
}

func WriteConfig(opts interface{}, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	if err := enc.Encode(opts); err != nil {
		return err
	}
	log.Printf("wrote config to %s\n", filename)
	return nil
}

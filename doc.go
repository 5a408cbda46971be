// Package resultgen synthesizes fake test-result artifacts for load testing
// and performance testing of result-ingestion pipelines. It can produce:
//
//   - .suite files imitating the console transcript of a `go test -v` run,
//     one module per file, ending in a PASS/FAIL summary and a timing line
//   - a test_results.json bundle with per-test status, timestamps, and a
//     block of raw log text
//   - test_selection_results.json derived from a recommended-tests file,
//     marking every recommended test as passed
//   - xUnit XML report files (testsuite/testcase, optional failure elements)
//   - .jsonl trace files where each line is an OTLP-style JSON export
//     document (resourceSpans -> scopeSpans -> spans)
//
// Each generator is a flat, single-threaded loop: roll random field values,
// serialize, write one file. Aggregate fields (test counts, failure counts,
// suite durations) are always consistent with the records actually emitted,
// but nothing else is validated. Trace parentage in particular is threaded
// loosely on purpose, since this is fuzz data for a pipeline, not telemetry
// anyone will debug from.
//
// Randomness comes from a string-seeded generator so that runs can be
// reproduced when a seed is given; without one, every run differs.
//
// The generators are exposed as standalone binaries under cmd/ (suitegen,
// resultsgen, selectiongen, xunitgen, tracegen), and together under the
// resultgen umbrella command. cmd/tracesink is a small OTLP/HTTP receiver
// that counts unique trace and span ids, useful as a local stand-in for the
// real ingestion system when exercising tracegen's upload mode.
package resultgen

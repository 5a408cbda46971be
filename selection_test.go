package resultgen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSelectionResults(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "recommended.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"tests":[{"name":"A"},{"name":"B"}]}`), 0644))

	n, err := GenerateSelectionResults(input, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(filepath.Join(dir, SelectionResultsFile))
	require.NoError(t, err)

	var out SelectionResults
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Results, 2)

	assert.Equal(t, "A", out.Results[0].TestFile)
	assert.Equal(t, "B", out.Results[1].TestFile)
	for _, r := range out.Results {
		assert.Equal(t, "pass", r.Status)
		assert.Equal(t, r.Start, r.End, "selection results report zero duration")
		assert.NotZero(t, r.Start)
	}
}

func TestGenerateSelectionResults_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "recommended.json")
	require.NoError(t, os.WriteFile(input, []byte(`{}`), 0644))

	n, err := GenerateSelectionResults(input, dir)
	require.NoError(t, err)
	assert.Zero(t, n)

	data, err := os.ReadFile(filepath.Join(dir, SelectionResultsFile))
	require.NoError(t, err)
	var out SelectionResults
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Empty(t, out.Results)
}

func TestGenerateSelectionResults_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := GenerateSelectionResults(filepath.Join(dir, "nope.json"), dir)
	assert.Error(t, err)
}

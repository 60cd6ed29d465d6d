package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingredient-analyzer/internal/core/ingredient"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeOfflineJSON(t *testing.T) {
	out, err := run(t, "Ingredients: milk, honey, aspartame", "analyze", "--offline", "--json", "--allergy", "milk")
	require.NoError(t, err)

	var report ingredient.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, ingredient.StatusAnalyzed, report.Status)
	require.Len(t, report.Results, 3)
	assert.True(t, report.Results[0].Allergen)
	assert.Equal(t, ingredient.CategoryHarmful, report.Overall.Score)
	assert.Equal(t, "Contains an ingredient you are allergic to.", report.Overall.Reason)
}

func TestAnalyzeOfflineTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label.txt")
	require.NoError(t, os.WriteFile(path, []byte("INGREDIENTS: HONEY, SEA SALT"), 0o600))

	out, err := run(t, "", "analyze", "--offline", path)
	require.NoError(t, err)
	assert.Contains(t, out, "honey")
	assert.Contains(t, out, "sea salt")
	assert.Contains(t, out, "2 out of 2 ingredients are generally safe and natural")
	assert.Contains(t, out, "Tip:")
}

func TestAnalyzeOfflineEmpty(t *testing.T) {
	out, err := run(t, "   ", "analyze", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "No ingredients found.")
}

func TestAnalyzeImageOfflineFails(t *testing.T) {
	_, err := run(t, "not an image", "analyze", "--offline", "--image")
	assert.Error(t, err)
}

func TestExtractCommand(t *testing.T) {
	out, err := run(t, "Contains: water, sugar (cane), salt", "extract", "--json")
	require.NoError(t, err)

	var extraction ingredient.Extraction
	require.NoError(t, json.Unmarshal([]byte(out), &extraction))
	assert.Equal(t, []string{"water", "sugar", "salt"}, extraction.Ingredients)
	assert.Equal(t, ingredient.ConfidenceHigh, extraction.Confidence)

	out, err = run(t, "Contains: water, sugar", "extract")
	require.NoError(t, err)
	assert.Contains(t, out, "marker contains:, confidence high")
}

func TestTipsAndLookup(t *testing.T) {
	out, err := run(t, "", "tips")
	require.NoError(t, err)
	for _, tip := range ingredient.DefaultTable.Tips()[:1] {
		assert.Contains(t, out, strings.Fields(tip)[0])
	}

	out, err = run(t, "", "lookup", "high", "fructose", "corn", "syrup")
	require.NoError(t, err)
	assert.Contains(t, out, "harmful")

	_, err = run(t, "", "lookup", "zorblax")
	assert.Error(t, err)
}

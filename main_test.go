package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-info/services"
)

const testDataset = `{"price":"300000","area":"1200","bedrooms":"3","bathrooms":"2","parking":"1","furnishingstatus":"furnished"}
{"price":"100000","area":"800","bedrooms":"2","bathrooms":"1","parking":"0","furnishingstatus":"unfurnished"}
{"price":"1200000","area":"3000","bedrooms":"4","bathrooms":"3","parking":"2","prefarea":"yes","furnishingstatus":"semi-furnished"}
`

// runCLI executes the root command with args against a temporary dataset.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "house-price.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(testDataset), 0o644))

	t.Setenv("KB_OUTPUT_PATH", filepath.Join(dir, "prolog", "housing.pl"))
	t.Setenv("POSTGRES_DSN", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.yaml"), "--data", dataPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestDisplayCommand(t *testing.T) {
	out, err := runCLI(t, "", "display")
	require.NoError(t, err)
	assert.Contains(t, out, "There are currently 3 houses listed.")
	assert.Contains(t, out, "RM 300,000")
}

func TestSearchCommandWritesCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "out", "search.csv")
	out, err := runCLI(t, "", "search", "--min", "500000", "--max", "50000", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 houses in price range RM 50,000 - RM 500,000:")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "price", records[0][0])
	assert.Equal(t, "300000", records[1][0])
	assert.Equal(t, "100000", records[2][0])
}

func TestSearchCommandInvalidBound(t *testing.T) {
	_, err := runCLI(t, "", "search", "--min", "cheap", "--max", "10")
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid price range. Please enter valid numbers.", verr.UserMessage())
}

func TestCountCommand(t *testing.T) {
	out, err := runCLI(t, "", "count")
	require.NoError(t, err)
	assert.Contains(t, out, "Furnished: 1 (33.3%)")
	assert.Contains(t, out, "Semi-Furnished: 1 (33.3%)")
	assert.Contains(t, out, "Total Houses: 3")
}

func TestSortCommand(t *testing.T) {
	out, err := runCLI(t, "", "sort", "--by", "parking")
	require.NoError(t, err)
	assert.Contains(t, out, "Houses sorted by parking (low to high):")
	assert.Less(t, strings.Index(out, "RM 100,000"), strings.Index(out, "RM 300,000"))

	_, err = runCLI(t, "", "sort", "--by", "colour")
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestMarkupCommand(t *testing.T) {
	out, err := runCLI(t, "", "markup")
	require.NoError(t, err)
	assert.Contains(t, out, "Housing Prices with 10% Markup:")
	assert.Contains(t, out, "Total Markup: RM 160,000")

	out, err = runCLI(t, "", "markup", "--percent", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Housing Prices with 50% Markup:")
	assert.Contains(t, out, "RM 150,000")
}

func TestMarkupCommandCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "markup.csv")
	_, err := runCLI(t, "", "markup", "--csv", csvPath)
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[0], ",original_price"))
	assert.True(t, strings.HasPrefix(lines[1], "330000,"))
	assert.True(t, strings.HasSuffix(lines[1], ",300000"))
}

func TestExportAndQueryCommands(t *testing.T) {
	out, err := runCLI(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully generated Prolog facts!")
	assert.Contains(t, out, "(3 facts)")

	out, err = runCLI(t, "", "query", "luxury")
	require.NoError(t, err)
	assert.Contains(t, out, "1 houses satisfy luxury_house:")
	assert.Contains(t, out, "RM 1,200,000")

	_, err = runCLI(t, "", "query", "cheap")
	require.Error(t, err)
}

func TestSyncDBRequiresDSN(t *testing.T) {
	_, err := runCLI(t, "", "sync-db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestRootRunsShell(t *testing.T) {
	out, err := runCLI(t, "3\n\n7\n")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Housing Information System ===")
	assert.Contains(t, out, "Total Houses: 3")
	assert.Contains(t, out, "Thank you for using Housing Information System!")
}

func TestMissingDataFile(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", "", "--data", filepath.Join(t.TempDir(), "nope.json"), "display"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read housing data")
}

func TestStatsCommand(t *testing.T) {
	out, err := runCLI(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total houses          : 3")
	assert.Contains(t, out, "Average price : RM 533,333")
	assert.Contains(t, out, "Maximum price : RM 1,200,000 (house #3)")
}

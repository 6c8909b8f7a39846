package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageResults() []schema.EndpointUsageResult {
	lastSeen := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	return []schema.EndpointUsageResult{
		{
			Method:            "GET",
			Path:              "/pets",
			CallCount:         0,
			LastSeen:          nil,
			UniqueCallers:     0,
			Callers:           nil,
			ConfidenceScore:   100,
			ConfidenceReasons: []string{"Never called in logs"},
		},
		{
			Method:            "POST",
			Path:              "/orders",
			CallCount:         42,
			LastSeen:          &lastSeen,
			UniqueCallers:     2,
			Callers:           []string{"billing", "checkout"},
			ConfidenceScore:   35,
			ConfidenceReasons: []string{"Moderate call count (42 calls)", "Recently active (3 days ago)", "Few unique callers (2)"},
		},
	}
}

func TestWriteUsageResultsTable(t *testing.T) {
	cfg := &contract.Config{
		Output: schema.TextOut,
		Width:  120,
	}

	var buf bytes.Buffer
	err := WriteUsageResults(&buf, usageResults(), cfg, 100*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "GET")
	assert.Contains(t, output, "/pets")
	assert.Contains(t, output, "Critical")
	assert.Contains(t, output, "Never")
	assert.Contains(t, output, "/orders")
	assert.Contains(t, output, "2025-03-10")
	assert.Contains(t, output, "Showing 2 endpoints (1 unused, 50.0%)")
	assert.Contains(t, output, "Analysis completed in 100ms")
}

func TestWriteUsageResultsJSON(t *testing.T) {
	cfg := &contract.Config{Output: schema.JSONOut}

	var buf bytes.Buffer
	err := WriteUsageResults(&buf, usageResults(), cfg, time.Millisecond)
	require.NoError(t, err)

	var result []map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "Critical", result[0]["label"])
	assert.Equal(t, "GET", result[0]["method"])
	assert.Equal(t, "/pets", result[0]["path"])
	assert.Equal(t, float64(100), result[0]["confidence_score"])

	assert.Equal(t, float64(2), result[1]["rank"])
	assert.Equal(t, "Low", result[1]["label"])
	assert.Equal(t, float64(42), result[1]["call_count"])
}

func TestWriteUsageResultsCSV(t *testing.T) {
	cfg := &contract.Config{Output: schema.CSVOut}

	var buf bytes.Buffer
	err := WriteUsageResults(&buf, usageResults(), cfg, time.Millisecond)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Contains(t, lines[0], "rank")
	assert.Contains(t, lines[0], "confidence_score")
	assert.Contains(t, lines[0], "reasons")

	assert.Contains(t, lines[1], "GET")
	assert.Contains(t, lines[1], "/pets")
	assert.Contains(t, lines[1], "unused")
	assert.Contains(t, lines[1], "Never")

	assert.Contains(t, lines[2], "POST")
	assert.Contains(t, lines[2], "active")
	assert.Contains(t, lines[2], "billing|checkout")
}

func TestWriteUsageResultsEmpty(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut}

	var buf bytes.Buffer
	err := WriteUsageResults(&buf, nil, cfg, 5*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Showing 0 endpoints (0 unused, 0.0%)")
	assert.Contains(t, output, "Analysis completed in 5ms")
}

func TestWriteCSVResultsForUsage(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForUsage(w, usageResults())
	require.NoError(t, err)
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "1", records[0][0])
	assert.Equal(t, "Critical", records[0][4])
	assert.Equal(t, "Never called in logs", records[0][10])
	assert.Equal(t, "Moderate call count (42 calls); Recently active (3 days ago); Few unique callers (2)", records[1][10])
}

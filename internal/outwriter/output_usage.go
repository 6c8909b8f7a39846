package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteUsageResults outputs the scored endpoint results, dispatching based on
// the output format configured.
func WriteUsageResults(w io.Writer, results []schema.EndpointUsageResult, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForUsage(w, results); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, usageCSVHeader(), func(cw *csv.Writer) error {
			return writeCSVResultsForUsage(cw, results)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeUsageTable(w, results, cfg, duration)
	}
	return nil
}

// writeUsageTable generates and writes the human-readable table.
func writeUsageTable(writer io.Writer, results []schema.EndpointUsageResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Method", "Path", "Score", "Label", "Calls", "Last Seen", "Callers"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			r.Method,            // Method
			contract.TruncatePath(r.Path, getMaxTablePathWidth(cfg)), // Path
			strconv.Itoa(r.ConfidenceScore),           // Score
			contract.GetColorLabel(r.ConfidenceScore), // Label
			strconv.Itoa(r.CallCount),                 // Calls
			schema.FormatLastSeen(r.LastSeen),         // Last Seen
			strconv.Itoa(r.UniqueCallers),             // Callers
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	numEndpoints := len(results)
	numUnused := 0
	for i := range results {
		if results[i].IsUnused() {
			numUnused++
		}
	}
	unusedPct := 0.0
	if numEndpoints > 0 {
		unusedPct = float64(numUnused) / float64(numEndpoints) * 100
	}
	if _, err := fmt.Fprintf(writer, "Showing %d endpoints (%d unused, %.1f%%)\n", numEndpoints, numUnused, unusedPct); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// usageCSVHeader returns the CSV header row for usage results.
func usageCSVHeader() []string {
	return []string{
		"rank",
		"method",
		"path",
		"confidence_score",
		"label",
		"status",
		"call_count",
		"last_seen",
		"unique_callers",
		"callers",
		"reasons",
	}
}

// writeCSVResultsForUsage writes the scored endpoint results in CSV format.
func writeCSVResultsForUsage(w *csv.Writer, results []schema.EndpointUsageResult) error {
	for i, r := range results {
		rec := []string{
			strconv.Itoa(i + 1),                     // Rank
			r.Method,                                // Method
			r.Path,                                  // Path
			strconv.Itoa(r.ConfidenceScore),         // Score
			schema.GetPlainLabel(r.ConfidenceScore), // Label
			string(r.Status()),                      // Status
			strconv.Itoa(r.CallCount),               // Calls
			schema.FormatLastSeen(r.LastSeen),       // Last Seen
			strconv.Itoa(r.UniqueCallers),           // Unique Callers
			strings.Join(r.Callers, "|"),            // Caller sample
			strings.Join(r.ConfidenceReasons, "; "), // Reasons
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForUsage writes the scored endpoint results in JSON format.
func writeJSONResultsForUsage(w io.Writer, results []schema.EndpointUsageResult) error {
	return writeJSON(w, schema.EnrichResults(results))
}

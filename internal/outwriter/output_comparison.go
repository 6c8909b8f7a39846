package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
)

// comparisonListLimit caps the endpoint lists shown in the text output.
const comparisonListLimit = 10

// WriteComparisonResults outputs a two-scan comparison, dispatching based on
// the output format configured.
func WriteComparisonResults(w io.Writer, comparison *schema.ScanComparison, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, comparison); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, []string{"change", "endpoint", "delta"}, func(cw *csv.Writer) error {
			return writeCSVResultsForComparison(cw, comparison)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeComparisonText(w, comparison, cfg)
	}
	return nil
}

// writeComparisonText writes the human-readable comparison summary.
func writeComparisonText(w io.Writer, comparison *schema.ScanComparison, cfg *contract.Config) error {
	banner := strings.Repeat("=", 80)
	if _, err := fmt.Fprintf(w, "\n%s\nSCAN COMPARISON\n%s\n", banner, banner); err != nil {
		return err
	}

	if err := writeScanSummary(w, 1, &comparison.Scan1); err != nil {
		return err
	}
	if err := writeScanSummary(w, 2, &comparison.Scan2); err != nil {
		return err
	}

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	s := &comparison.Summary
	if _, err := fmt.Fprintf(w, "\nChanges:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Added: %s endpoints\n", yellow(s.EndpointsAdded)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Removed: %s endpoints\n", yellow(s.EndpointsRemoved)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Became unused: %s endpoints\n", red(s.EndpointsBecameUnused)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Became used: %s endpoints\n", green(s.EndpointsBecameUsed)); err != nil {
		return err
	}
	unusedChange := fmt.Sprintf("%+d", s.UnusedChange)
	if s.UnusedChange > 0 {
		unusedChange = red(unusedChange)
	} else if s.UnusedChange < 0 {
		unusedChange = green(unusedChange)
	}
	if _, err := fmt.Fprintf(w, "  Unused change: %s\n", unusedChange); err != nil {
		return err
	}

	if err := writeEndpointList(w, "Endpoints that became unused:", comparison.Changes.BecameUnused); err != nil {
		return err
	}
	return writeEndpointList(w, "Endpoints that became used:", comparison.Changes.BecameUsed)
}

// writeScanSummary writes the headline numbers for one side of the comparison.
func writeScanSummary(w io.Writer, ordinal int, scan *schema.ScanSummary) error {
	if _, err := fmt.Fprintf(w, "\nScan %d: #%d at %s\n", ordinal, scan.ID, scan.Timestamp); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Endpoints: %d total, %d unused\n", scan.TotalEndpoints, scan.UnusedEndpoints)
	return err
}

// writeEndpointList writes a capped bullet list of endpoint keys.
func writeEndpointList(w io.Writer, title string, endpoints []string) error {
	if len(endpoints) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	limit := min(len(endpoints), comparisonListLimit)
	for _, endpoint := range endpoints[:limit] {
		if _, err := fmt.Fprintf(w, "  - %s\n", endpoint); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResultsForComparison writes every endpoint-level change as one CSV row.
func writeCSVResultsForComparison(w *csv.Writer, comparison *schema.ScanComparison) error {
	writeGroup := func(change string, endpoints []string) error {
		for _, endpoint := range endpoints {
			if err := w.Write([]string{change, endpoint, ""}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeGroup("added", comparison.Changes.AddedEndpoints); err != nil {
		return err
	}
	if err := writeGroup("removed", comparison.Changes.RemovedEndpoints); err != nil {
		return err
	}
	if err := writeGroup("became_unused", comparison.Changes.BecameUnused); err != nil {
		return err
	}
	if err := writeGroup("became_used", comparison.Changes.BecameUsed); err != nil {
		return err
	}

	writeDeltas := func(change string, deltas []schema.UsageDelta) error {
		for _, d := range deltas {
			if err := w.Write([]string{change, d.Endpoint, strconv.Itoa(d.Delta)}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeDeltas("increased_usage", comparison.Changes.IncreasedUsage); err != nil {
		return err
	}
	return writeDeltas("decreased_usage", comparison.Changes.DecreasedUsage)
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
)

// WriteTrendResults outputs a service trend analysis, dispatching based on
// the output format configured.
func WriteTrendResults(w io.Writer, trend *schema.TrendResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, trend); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, trendCSVHeader(), func(cw *csv.Writer) error {
			return writeCSVResultsForTrend(cw, trend)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeTrendText(w, trend)
	}
	return nil
}

// writeTrendText writes the human-readable trend summary.
func writeTrendText(w io.Writer, trend *schema.TrendResult) error {
	if err := printSection(w, fmt.Sprintf("Trend Analysis: %s", trend.Service)); err != nil {
		return err
	}

	current := &trend.Current
	if _, err := fmt.Fprintf(w, "\nCurrent State:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Total endpoints: %d\n", current.TotalEndpoints); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Unused endpoints: %d (%g%%)\n", current.UnusedEndpoints, current.UnusedPercentage); err != nil {
		return err
	}

	deltas := &trend.Trends
	if _, err := fmt.Fprintf(w, "\nTrends (%d scans):\n", trend.ScansCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Endpoint count: %s (%+d)\n", deltas.EndpointTrend, deltas.EndpointChange); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Unused count: %s (%+d)\n", deltas.UnusedTrend, deltas.UnusedChange); err != nil {
		return err
	}

	averages := &trend.Averages
	if _, err := fmt.Fprintf(w, "\nAverages:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Avg total: %g\n", averages.AvgTotalEndpoints); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Avg unused: %g (%g%%)\n", averages.AvgUnusedEndpoints, averages.AvgUnusedPercentage)
	return err
}

// trendCSVHeader returns the CSV header row for the trend time series.
func trendCSVHeader() []string {
	return []string{"timestamp", "total_endpoints", "unused_endpoints", "unused_percentage"}
}

// writeCSVResultsForTrend writes the trend time series in CSV format.
func writeCSVResultsForTrend(w *csv.Writer, trend *schema.TrendResult) error {
	for _, point := range trend.TimeSeries {
		rec := []string{
			point.Timestamp,
			strconv.Itoa(point.TotalEndpoints),
			strconv.Itoa(point.UnusedEndpoints),
			strconv.FormatFloat(point.UnusedPercentage, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

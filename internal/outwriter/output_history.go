package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyTableFormat is the timestamp layout for the human-readable history table.
const historyTableFormat = "2006-01-02 15:04:05"

// WriteHistoryResults outputs stored scan records, dispatching based on the
// output format configured.
func WriteHistoryResults(w io.Writer, scans []schema.ScanRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, scans); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, historyCSVHeader(), func(cw *csv.Writer) error {
			return writeCSVResultsForHistory(cw, scans)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeHistoryTable(w, scans)
	}
	return nil
}

// writeHistoryTable generates and writes the human-readable scan history table.
func writeHistoryTable(writer io.Writer, scans []schema.ScanRecord) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"ID", "Service", "Date", "Endpoints", "Unused", "Status"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range scans {
		s := &scans[i]
		data = append(data, []string{
			strconv.FormatInt(s.ID, 10),            // ID
			s.ServiceName,                          // Service
			s.Timestamp.Format(historyTableFormat), // Date
			strconv.Itoa(s.TotalEndpoints),         // Endpoints
			strconv.Itoa(s.UnusedEndpoints),        // Unused
			string(scanStatus(s)),                  // Status
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d scans\n", len(scans)); err != nil {
		return err
	}
	return nil
}

// historyCSVHeader returns the CSV header row for scan history.
func historyCSVHeader() []string {
	return []string{
		"id",
		"timestamp",
		"service",
		"total_endpoints",
		"unused_endpoints",
		"unused_percentage",
		"duration_seconds",
		"status",
	}
}

// writeCSVResultsForHistory writes the scan records in CSV format.
func writeCSVResultsForHistory(w *csv.Writer, scans []schema.ScanRecord) error {
	for i := range scans {
		s := &scans[i]
		rec := []string{
			strconv.FormatInt(s.ID, 10),                            // ID
			s.Timestamp.Format(contract.DateTimeFormat),            // Timestamp
			s.ServiceName,                                          // Service
			strconv.Itoa(s.TotalEndpoints),                         // Endpoints
			strconv.Itoa(s.UnusedEndpoints),                        // Unused
			strconv.FormatFloat(s.UnusedPercentage(), 'f', 2, 64),  // Unused %
			strconv.FormatFloat(s.ScanDurationSeconds, 'f', 2, 64), // Duration
			string(scanStatus(s)),                                  // Status
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// scanStatus maps the stored success flag onto a scan status value.
func scanStatus(s *schema.ScanRecord) schema.ScanStatus {
	if s.Success {
		return schema.ScanSuccess
	}
	return schema.ScanFailure
}

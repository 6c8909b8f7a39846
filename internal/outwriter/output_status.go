package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
)

// WriteStatusResults outputs the history store status, dispatching based on
// the output format configured.
func WriteStatusResults(w io.Writer, status *schema.HistoryStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, status); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		header := []string{"backend", "connected", "total_scans", "total_snapshots", "last_scan_id"}
		if err := writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return cw.Write([]string{
				status.Backend,
				strconv.FormatBool(status.Connected),
				strconv.Itoa(status.TotalScans),
				strconv.Itoa(status.TotalSnapshots),
				strconv.FormatInt(status.LastScanID, 10),
			})
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeStatusText(w, status)
	}
	return nil
}

// writeStatusText writes the human-readable history status.
func writeStatusText(w io.Writer, status *schema.HistoryStatus) error {
	if _, err := fmt.Fprintf(w, "Backend: %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Connected: %t\n", status.Connected); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total scans: %d\n", status.TotalScans); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total snapshots: %d\n", status.TotalSnapshots); err != nil {
		return err
	}
	if status.LastScanID > 0 {
		if _, err := fmt.Fprintf(w, "Last scan: #%d at %s\n", status.LastScanID, status.LastScanTime.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
	}
	if !status.OldestScanTime.IsZero() {
		if _, err := fmt.Fprintf(w, "Oldest scan: %s\n", status.OldestScanTime.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
	}
	if len(status.TableSizes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Table sizes:\n"); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(status.TableSizes)) {
		if _, err := fmt.Fprintf(w, "  %s: %d rows\n", name, status.TableSizes[name]); err != nil {
			return err
		}
	}
	return nil
}

package history

import (
	"errors"
	"fmt"

	"github.com/huangsam/graveyard/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of scan history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetScanStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalScans == 0 {
		return errors.New("no scan history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scans: %d\n", status.TotalScans)
	fmt.Printf("Total endpoint snapshots: %d\n", status.TotalSnapshots)

	scans, err := store.GetScans("", 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve scans: %w", err)
	}

	snapshots, err := store.GetAllSnapshots()
	if err != nil {
		return fmt.Errorf("failed to retrieve endpoint snapshots: %w", err)
	}

	// Convert to Parquet format
	parquetScans := parquet.ConvertScanRecords(scans)
	parquetSnapshots := parquet.ConvertSnapshotRecords(snapshots)

	scansFile := outputFile + ".scans.parquet"
	if err := parquet.WriteScansParquet(parquetScans, scansFile); err != nil {
		return fmt.Errorf("failed to write scans: %w", err)
	}
	fmt.Printf("Exported %d scans to: %s\n", len(parquetScans), scansFile)

	snapshotsFile := outputFile + ".endpoint_snapshots.parquet"
	if err := parquet.WriteEndpointSnapshotsParquet(parquetSnapshots, snapshotsFile); err != nil {
		return fmt.Errorf("failed to write endpoint snapshots: %w", err)
	}
	fmt.Printf("Exported %d endpoint snapshots to: %s\n", len(parquetSnapshots), snapshotsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}

package cmd

import (
	"fmt"

	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/history"
	"github.com/huangsam/graveyard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyClearSetup loads just enough configuration to know which backend to
// clear. It deliberately skips store initialization so clearing works even
// when the schema is broken or the database file is corrupt.
func historyClearSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd manages stored scan history. Running it without a subcommand
// lists recent scans.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and manage scan history",
	Long: `List recent scans and manage the scan history store.

Every scan records its endpoint counts and a per-endpoint usage snapshot,
which powers 'compare', 'trends' and 'cost-analysis'. Running 'history'
without a subcommand lists recent scans, newest first.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show history store statistics
  export - Export history to Parquet for analytics
  clear  - Remove all stored history

Examples:
  # List recent scans across all services
  graveyard history

  # Only the payments service
  graveyard history --service payments --limit 5`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistoryList(cfg, historyManager); err != nil {
			contract.LogFatal("Cannot list scan history", err)
		}
	},
}

// historyStatusCmd shows history store statistics.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show detailed information about the scan history store.

Displays:
- Backend type and connection status
- Total scans and endpoint snapshots stored
- First and most recent scan timestamps
- Services tracked

Examples:
  # Check history store status
  graveyard history status`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistoryStatus(cfg, historyManager); err != nil {
			contract.LogFatal("Cannot get history status", err)
		}
	},
}

// historyClearCmd removes all stored scan history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored scan history",
	Long: `Delete every stored scan and endpoint snapshot.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  graveyard history export --output-file backup
  graveyard history clear`,
	PreRunE: historyClearSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear scan history", err)
		}
		fmt.Println("Scan history cleared successfully.")
	},
}

// historyExportCmd exports scan history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scan history to Parquet for BI tools and analytics",
	Long: `Export all stored scan history to Parquet format.

Exports two datasets:
- Scans - one row per scan with endpoint counts and duration
- Endpoint snapshots - per-endpoint usage captured by each scan

Requires: --output-file parameter. Two files are written, suffixed
.scans.parquet and .endpoint_snapshots.parquet.

Examples:
  # Export all history
  graveyard history export --output-file graveyard-data

  # Query the export with DuckDB
  duckdb -c "SELECT * FROM read_parquet('graveyard-data.scans.parquet') LIMIT 10"`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export scan history", err)
		}
	},
}

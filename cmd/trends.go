package cmd

import (
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/spf13/cobra"
)

// trendsCmd analyzes how a service's unused endpoint count moved over time.
var trendsCmd = &cobra.Command{
	Use:   "trends <service-name>",
	Short: "Show usage trends for a service over time",
	Long: `Analyze the scan history of a service and report how its endpoint
counts moved over the lookback period.

Shows a scan-by-scan time series, the change between the first and last
scan, and period averages. Scans whose unused count jumps far outside the
period's normal band are flagged as anomalies, which usually means a big
deploy, a traffic shift or a broken log pipeline.

Requires at least two scans of the service inside the period.

Examples:
  # Last 30 days of the payments service
  graveyard trends payments

  # Look further back
  graveyard trends payments --days 90

  # Machine-readable output for dashboards
  graveyard trends payments --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		cfg.ServiceName = args[0]
		if err := core.ExecuteTrends(cfg, historyManager); err != nil {
			contract.LogFatal("Trend analysis failed", err)
		}
	},
}

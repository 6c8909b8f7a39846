package cmd

import (
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/spf13/cobra"
)

// costCmd estimates savings from removing a service's unused endpoints.
var costCmd = &cobra.Command{
	Use:   "cost-analysis <service-name>",
	Short: "Estimate the savings from removing unused endpoints",
	Long: `Price the unused endpoints from a service's most recent scan and
estimate the monthly, annual and three-year savings from removing them.

The estimate combines a per-request serving cost with a flat monthly
infrastructure cost per endpoint (monitoring, docs, maintenance). The
assumptions are printed with the result so the numbers can be challenged.

These are rough planning numbers for prioritizing cleanup work, not a
billing forecast.

Examples:
  # Price the latest payments scan
  graveyard cost-analysis payments

  # JSON output for reporting
  graveyard cost-analysis payments --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		cfg.ServiceName = args[0]
		if err := core.ExecuteCost(cfg, historyManager); err != nil {
			contract.LogFatal("Cost analysis failed", err)
		}
	},
}

package cmd

import (
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/spf13/cobra"
)

// scanMultiCmd scans a fleet of services described by a config file.
var scanMultiCmd = &cobra.Command{
	Use:   "scan-multi",
	Short: "Scan multiple services in parallel from a config file",
	Long: `Scan every service listed in a YAML config file and aggregate the
results into a single fleet-wide report.

Services are scanned concurrently by a worker pool sized with --workers.
One broken service never sinks the run; its failure is recorded in the
report next to the successful scans. The aggregate highlights endpoints
that are unused across every service that exposes them, which are the
safest fleet-wide removal candidates.

The config file is usually produced by 'graveyard discover-org', but can
be written by hand:

  services:
    - name: payments
      spec: payments/openapi.yaml
      logs: payments/access.jsonl

Examples:
  # Scan the fleet described by org-services.yaml
  graveyard scan-multi --config org-services.yaml

  # Write the aggregate report somewhere specific
  graveyard scan-multi --config org-services.yaml --multi-report fleet.json

  # Limit concurrency
  graveyard scan-multi --config org-services.yaml --workers 2`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMultiScan(rootCtx, cfg); err != nil {
			contract.LogFatal("Multi-service scan failed", err)
		}
	},
}

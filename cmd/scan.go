package cmd

import (
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scanCmd analyzes a single service's spec against its access logs.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan an API spec against access logs to find unused endpoints.",
	Long: `Cross-reference every endpoint in an OpenAPI spec with real access logs
and rank the endpoints nobody calls by removal confidence.

Each endpoint gets a 0-100 confidence score built from call volume, recency
and caller diversity. Endpoints that never appear in the logs score 100.

When --spec or --logs are omitted, graveyard searches the current repository
for an OpenAPI spec and an access log file.

Results are saved to scan history so you can track trends, compare runs
and estimate cost savings later.

Examples:
  # Scan with explicit inputs
  graveyard scan --spec openapi.yaml --logs access.jsonl

  # Let graveyard find the spec and logs in the current repo
  graveyard scan --service payments

  # Only count traffic from the last 90 days
  graveyard scan --spec openapi.yaml --logs access.jsonl --window 90

  # Skip the Markdown report and history record
  graveyard scan --spec openapi.yaml --logs access.jsonl --report "" --no-history`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ctx := rootCtx
		if viper.GetBool("no-history") {
			ctx = core.WithSkipHistory(ctx)
		}
		if err := core.ExecuteScan(ctx, cfg, historyManager); err != nil {
			contract.LogFatal("Scan failed", err)
		}
	},
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd diffs endpoint usage between two historical scans.
var compareCmd = &cobra.Command{
	Use:   "compare <scan1-id> <scan2-id>",
	Short: "Compare endpoint usage between two scans",
	Long: `Compare two scans from history and report how endpoint usage changed
between them.

The comparison shows:
- Endpoints added to or removed from the spec
- Endpoints that had traffic and now have none (and the reverse)
- Endpoints whose call volume moved significantly

Scan IDs come from 'graveyard history'. Pass the older scan first.

Examples:
  # List scans, then compare two of them
  graveyard history
  graveyard compare 12 15

  # JSON output for tooling
  graveyard compare 12 15 --output json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		scan1ID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			contract.LogFatal("Invalid scan ID", fmt.Errorf("%q is not a number", args[0]))
		}
		scan2ID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			contract.LogFatal("Invalid scan ID", fmt.Errorf("%q is not a number", args[1]))
		}
		if err := core.ExecuteCompare(cfg, historyManager, scan1ID, scan2ID); err != nil {
			contract.LogFatal("Comparison failed", err)
		}
	},
}

package cmd

import (
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/gitops"
	"github.com/spf13/cobra"
)

// pruneCmd removes high-confidence unused endpoints and opens a cleanup PR.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove unused endpoints from the spec and open a cleanup PR",
	Long: `Scan the spec against access logs, strip every endpoint whose removal
confidence meets the threshold, and open a pull request with the change.

The workflow:
1. Scan the spec against the logs
2. Pick endpoints scoring at or above --threshold (default 80)
3. Create a branch, rewrite the spec, commit and push
4. Open a pull request with a summary of the removed endpoints

The spec file is only modified after the worktree checks pass, and any git
failure rolls the spec and branch state back. Requires a GITHUB_TOKEN with
repo access for the PR step.

Examples:
  # Preview what would be removed
  graveyard prune --spec openapi.yaml --logs access.jsonl --dry-run

  # Remove endpoints scoring 90 or higher
  graveyard prune --spec openapi.yaml --logs access.jsonl --threshold 90

  # Customize the branch and PR
  graveyard prune --branch drop-dead-routes --title "Drop dead routes" --base develop`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		git := contract.NewLocalGitClient()
		host := gitops.NewGitHubClient(cfg.GitHubToken)
		if err := core.ExecutePrune(rootCtx, cfg, git, host); err != nil {
			contract.LogFatal("Prune failed", err)
		}
	},
}

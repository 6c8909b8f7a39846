package cmd

import (
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/gitops"
	"github.com/spf13/cobra"
)

// discoverOrgCmd builds a scan-multi config from a GitHub organization.
var discoverOrgCmd = &cobra.Command{
	Use:   "discover-org <org-name>",
	Short: "Discover services with API specs across a GitHub organization",
	Long: `Walk every repository in a GitHub organization, shallow-clone the ones
that look like services, and record each repo containing an OpenAPI spec
in a config file ready for 'graveyard scan-multi'.

Requires a GitHub token with read access to the organization, either via
--token or the GITHUB_TOKEN environment variable. Archived repositories
are skipped automatically.

Examples:
  # Discover all services in the acme org
  graveyard discover-org acme

  # Cap the crawl and skip infra repos
  graveyard discover-org acme --max-repos 50 --exclude infra,tooling

  # Write the config somewhere specific
  graveyard discover-org acme --org-output services/acme.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		git := contract.NewLocalGitClient()
		host := gitops.NewGitHubClient(cfg.GitHubToken)
		if err := core.ExecuteDiscoverOrg(rootCtx, cfg, host, git, args[0]); err != nil {
			contract.LogFatal("Organization discovery failed", err)
		}
	},
}

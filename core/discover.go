package core

import (
	"context"
	"fmt"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/discovery"
	"github.com/huangsam/graveyard/internal/gitops"
)

// ExecuteDiscoverOrg crawls a GitHub organization for services with
// OpenAPI specs and writes a multi-service scan config for them.
func ExecuteDiscoverOrg(ctx context.Context, cfg *contract.Config, host gitops.HostClient, git contract.GitClient, org string) error {
	fmt.Printf("Scanning GitHub organization: %s\n", org)
	if cfg.MaxRepos > 0 {
		fmt.Printf("Limiting to %d repositories\n", cfg.MaxRepos)
	}

	services, err := gitops.DiscoverOrgServices(ctx, cfg, host, git, org)
	if err != nil {
		return err
	}

	if err := discovery.SaveServices(services, cfg.OrgConfigFile); err != nil {
		return fmt.Errorf("cannot save org config: %w", err)
	}

	fmt.Printf("\nDiscovered %d services\n", len(services.Services))
	fmt.Printf("Configuration saved to: %s\n", cfg.OrgConfigFile)
	fmt.Printf("\nNext: graveyard scan-multi --config %s\n", cfg.OrgConfigFile)
	return nil
}

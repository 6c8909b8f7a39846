package gitops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/discovery"
	"github.com/huangsam/graveyard/schema"
)

// DiscoverOrgServices shallow-clones each repository in an organization and
// keeps the ones where an OpenAPI spec turns up. Archived repos and repos
// named in cfg.ExcludeRepos are skipped, and discovery stops once cfg.MaxRepos
// services have been found (0 = no cap). Clones land in a fresh temp dir.
func DiscoverOrgServices(ctx context.Context, cfg *contract.Config, host HostClient, git contract.GitClient, org string) (*schema.MultiServiceConfig, error) {
	if cfg.GitHubToken == "" {
		return nil, ErrNoToken
	}
	repos, err := host.ListOrgRepos(ctx, org)
	if err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp("", "gh-scan-"+org+"-")
	if err != nil {
		return nil, fmt.Errorf("cannot create work dir: %w", err)
	}

	services := []schema.ServiceConfig{}
	for _, repo := range repos {
		if repo.Archived || slices.Contains(cfg.ExcludeRepos, repo.Name) {
			continue
		}
		if cfg.MaxRepos > 0 && len(services) >= cfg.MaxRepos {
			break
		}
		fmt.Printf("Scanning %s...\n", repo.FullName)
		if svc, ok := cloneAndDiscover(ctx, git, repo, cfg.GitHubToken, workDir); ok {
			services = append(services, svc)
		}
	}
	return &schema.MultiServiceConfig{Org: org, Services: services}, nil
}

// cloneAndDiscover clones one repository at depth 1 and looks for its spec
// and logs. Repos without a spec are not services.
func cloneAndDiscover(ctx context.Context, git contract.GitClient, repo RemoteRepo, token, workDir string) (schema.ServiceConfig, bool) {
	dest := filepath.Join(workDir, repo.Name)
	if err := git.CloneShallow(ctx, CloneURL(repo.FullName, token), dest); err != nil {
		contract.LogWarn("error processing "+repo.FullName, err)
		return schema.ServiceConfig{}, false
	}
	spec, ok := discovery.FindSpec(dest)
	if !ok {
		return schema.ServiceConfig{}, false
	}
	logs := ""
	if found := discovery.FindLogs(dest); len(found) > 0 {
		logs = found[0]
	}
	return schema.ServiceConfig{
		Name: repo.Name,
		Spec: spec,
		Logs: logs,
		Repo: repo.FullName,
	}, true
}

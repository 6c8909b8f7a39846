package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/discovery"
	"github.com/huangsam/graveyard/internal/gitops"
	"github.com/huangsam/graveyard/internal/logsource"
	"github.com/huangsam/graveyard/internal/openapi"
	"github.com/huangsam/graveyard/internal/report"
	"github.com/huangsam/graveyard/schema"
)

// Prune preflight failures.
var (
	ErrNotGitRepo    = errors.New("not a git repository")
	ErrDirtyRepo     = errors.New("repository has uncommitted changes, please commit or stash them first")
	ErrUnknownRemote = errors.New("could not determine GitHub repository")
)

// ExecutePrune analyzes the spec against the logs, removes every endpoint at
// or above the confidence threshold and opens a cleanup pull request. The
// spec file is only touched after the worktree checks pass, and any git
// failure rolls the spec and branch state back. Entry point for the 'prune'
// command.
func ExecutePrune(ctx context.Context, cfg *contract.Config, git contract.GitClient, host gitops.HostClient) error {
	discovery.FillScanDefaults(cfg)
	if cfg.SpecPath == "" {
		return ErrNoSpecFound
	}
	if cfg.LogsPath == "" {
		return ErrNoLogsFound
	}

	fmt.Printf("🪦 API Graveyard Cleanup\n\n")
	fmt.Printf("📄 Spec: %s\n", cfg.SpecPath)
	fmt.Printf("📊 Logs: %s\n", cfg.LogsPath)
	fmt.Printf("🎯 Threshold: %d\n\n", cfg.Threshold)

	toRemove, removedTemplates, err := prunePlan(cfg)
	if err != nil {
		return err
	}

	if len(toRemove) == 0 {
		fmt.Printf("\n✨ No endpoints found with confidence >= %d\n", cfg.Threshold)
		fmt.Println("💡 All endpoints appear to be in use!")
		return nil
	}

	fmt.Printf("\n🎯 Found %d endpoint(s) to remove (confidence >= %d):\n\n", len(toRemove), cfg.Threshold)
	for _, ep := range toRemove {
		fmt.Printf("   • %-6s %-40s confidence=%d calls=%d last=%s\n",
			ep.Method, ep.Path, ep.ConfidenceScore, ep.CallCount, schema.FormatLastSeen(ep.LastSeen))
	}

	if cfg.DryRun {
		fmt.Println("\n🔍 Dry run mode - no changes made")
		fmt.Println("💡 Run without --dry-run to create PR")
		return nil
	}

	fmt.Println("\n🔀 Checking git status...")
	if !git.IsRepo(ctx, cfg.RepoPath) {
		return ErrNotGitRepo
	}
	dirty, err := git.HasUncommittedChanges(ctx, cfg.RepoPath)
	if err != nil {
		return err
	}
	if dirty {
		return ErrDirtyRepo
	}
	originalBranch, err := git.CurrentBranch(ctx, cfg.RepoPath)
	if err != nil {
		return err
	}

	fmt.Println("\n✂️  Removing endpoints from spec...")
	removed, err := openapi.RemoveEndpoints(cfg.SpecPath, removedTemplates, cfg.SpecPath)
	if err != nil {
		return err
	}
	fmt.Printf("   ✅ Removed %d endpoint(s) from spec\n", removed)

	fmt.Println("\n🔀 Creating git branch...")
	if err := git.CreateBranch(ctx, cfg.RepoPath, cfg.BranchName); err != nil {
		rollbackSpec(ctx, git, cfg)
		return err
	}
	commitMsg := fmt.Sprintf("Remove %d unused endpoint(s)", removed)
	if err := git.CommitPaths(ctx, cfg.RepoPath, commitMsg, cfg.SpecPath); err != nil {
		rollbackSpec(ctx, git, cfg)
		cleanupBranch(ctx, git, cfg, originalBranch)
		return err
	}
	fmt.Printf("   ✅ Created branch '%s' and committed changes\n", cfg.BranchName)

	fmt.Println("⬆️  Pushing to GitHub...")
	if err := git.Push(ctx, cfg.RepoPath, contract.DefaultRemote, cfg.BranchName); err != nil {
		cleanupBranch(ctx, git, cfg, originalBranch)
		return err
	}
	fmt.Printf("   ✅ Pushed branch '%s' to %s\n", cfg.BranchName, contract.DefaultRemote)

	fmt.Println("🔃 Creating pull request...")
	remoteURL, err := git.RemoteURL(ctx, cfg.RepoPath, contract.DefaultRemote)
	if err != nil {
		return err
	}
	owner, repoName, ok := gitops.ParseGitHubRemote(remoteURL)
	if !ok {
		return ErrUnknownRemote
	}

	prURL, err := host.CreatePullRequest(ctx, owner, repoName, gitops.PullRequestInput{
		Title: cfg.PRTitle,
		Body:  report.PruneBody(removed, cfg.Threshold, toRemove),
		Head:  cfg.BranchName,
		Base:  cfg.BaseBranch,
	})
	if err != nil {
		return err
	}

	fmt.Println("   ✅ Pull request created!")
	fmt.Println()
	fmt.Printf("🔗 %s\n", prURL)
	fmt.Println("\n🎉 Done! Review and merge the PR to clean up your API.")
	return nil
}

// prunePlan analyzes the configured inputs and returns the endpoints whose
// confidence clears the threshold, alongside their templates for the spec
// mutation.
func prunePlan(cfg *contract.Config) ([]schema.EndpointUsageResult, []schema.EndpointTemplate, error) {
	templates, err := openapi.LoadEndpoints(cfg.SpecPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading spec: %w", err)
	}
	totalEntries, err := logsource.Count(cfg.LogsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading logs: %w", err)
	}

	fmt.Printf("🔬 Analyzing %d endpoints against %d log entries...\n", len(templates), totalEntries)

	entries, err := logsource.Stream(cfg.LogsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading logs: %w", err)
	}
	now := time.Now().UTC()
	if cutoff := cfg.LogWindowCutoff(now); !cutoff.IsZero() {
		entries = logsource.Filter(entries, cutoff)
	}

	results := AnalyzeUsage(templates, entries, now)
	toRemove := FilterByThreshold(results, cfg.Threshold)

	targets := make([]schema.EndpointTemplate, 0, len(toRemove))
	for _, ep := range toRemove {
		targets = append(targets, schema.EndpointTemplate{Method: ep.Method, Path: ep.Path})
	}
	return toRemove, targets, nil
}

// rollbackSpec discards the uncommitted spec mutation.
func rollbackSpec(ctx context.Context, git contract.GitClient, cfg *contract.Config) {
	_, _ = fmt.Fprintln(os.Stderr, "🔄 Rolling back changes...")
	if err := git.RestorePaths(ctx, cfg.RepoPath, cfg.SpecPath); err != nil {
		contract.LogWarn("rollback failed", err)
	}
}

// cleanupBranch returns to the original branch and deletes the failed
// cleanup branch.
func cleanupBranch(ctx context.Context, git contract.GitClient, cfg *contract.Config, originalBranch string) {
	if originalBranch != "" {
		if err := git.Checkout(ctx, cfg.RepoPath, originalBranch); err != nil {
			contract.LogWarn("cannot return to branch "+originalBranch, err)
			return
		}
	}
	if err := git.DeleteBranch(ctx, cfg.RepoPath, cfg.BranchName); err != nil {
		contract.LogWarn("cannot delete branch "+cfg.BranchName, err)
		return
	}
	_, _ = fmt.Fprintln(os.Stderr, "🔄 Cleaned up failed branch")
}

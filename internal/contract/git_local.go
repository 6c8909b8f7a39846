package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// IsRepo implements the GitClient interface.
func (c *LocalGitClient) IsRepo(ctx context.Context, repoPath string) bool {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// HasUncommittedChanges implements the GitClient interface.
func (c *LocalGitClient) HasUncommittedChanges(ctx context.Context, repoPath string) (bool, error) {
	out, err := c.Run(ctx, repoPath, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// CurrentBranch implements the GitClient interface.
func (c *LocalGitClient) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListBranches implements the GitClient interface.
func (c *LocalGitClient) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	branches := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(branches) == 1 && branches[0] == "" {
		return []string{}, nil
	}
	return branches, nil
}

// RemoteURL implements the GitClient interface.
func (c *LocalGitClient) RemoteURL(ctx context.Context, repoPath string, remote string) (string, error) {
	out, err := c.Run(ctx, repoPath, "config", "--get", "remote."+remote+".url")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CreateBranch implements the GitClient interface.
func (c *LocalGitClient) CreateBranch(ctx context.Context, repoPath string, name string) error {
	_, err := c.Run(ctx, repoPath, "checkout", "-b", name)
	return err
}

// Checkout implements the GitClient interface.
func (c *LocalGitClient) Checkout(ctx context.Context, repoPath string, ref string) error {
	_, err := c.Run(ctx, repoPath, "checkout", ref)
	return err
}

// RestorePaths implements the GitClient interface.
func (c *LocalGitClient) RestorePaths(ctx context.Context, repoPath string, paths ...string) error {
	args := append([]string{"checkout", "--"}, paths...)
	_, err := c.Run(ctx, repoPath, args...)
	return err
}

// CommitPaths implements the GitClient interface.
func (c *LocalGitClient) CommitPaths(ctx context.Context, repoPath string, message string, paths ...string) error {
	addArgs := append([]string{"add", "--"}, paths...)
	if _, err := c.Run(ctx, repoPath, addArgs...); err != nil {
		return err
	}
	_, err := c.Run(ctx, repoPath, "commit", "-m", message)
	return err
}

// Push implements the GitClient interface.
func (c *LocalGitClient) Push(ctx context.Context, repoPath string, remote string, branch string) error {
	_, err := c.Run(ctx, repoPath, "push", "-u", remote, branch)
	return err
}

// DeleteBranch implements the GitClient interface.
func (c *LocalGitClient) DeleteBranch(ctx context.Context, repoPath string, name string) error {
	_, err := c.Run(ctx, repoPath, "branch", "-D", name)
	return err
}

// CloneShallow implements the GitClient interface.
func (c *LocalGitClient) CloneShallow(ctx context.Context, url string, dest string) error {
	_, err := c.Run(ctx, ".", "clone", "--depth", "1", url, dest)
	return err
}

// Package gitops talks to the source-control host: parsing remotes, creating
// cleanup pull requests and discovering services across an organization.
package gitops

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoToken means no GitHub credential was available for a host operation.
var ErrNoToken = errors.New("GitHub token required, set GITHUB_TOKEN env var")

// PullRequestInput carries everything needed to open a pull request.
type PullRequestInput struct {
	Title string
	Body  string
	Head  string // Source branch
	Base  string // Target branch
}

// RemoteRepo identifies one repository on the host.
type RemoteRepo struct {
	Name     string // Short name, e.g. payments-api
	FullName string // owner/name form
	Archived bool
}

// HostClient defines the source-control host operations used by the prune
// and organization-discovery workflows. It exists so both can be tested
// without network access.
type HostClient interface {
	// CreatePullRequest opens a pull request and returns its HTML URL.
	CreatePullRequest(ctx context.Context, owner, repo string, input PullRequestInput) (string, error)

	// ListOrgRepos returns every repository in the organization.
	ListOrgRepos(ctx context.Context, org string) ([]RemoteRepo, error)
}

// ParseGitHubRemote extracts the owner and repository name from a GitHub
// remote URL, accepting both SSH (git@github.com:owner/repo.git) and HTTPS
// (https://github.com/owner/repo.git) forms.
func ParseGitHubRemote(url string) (string, string, bool) {
	if !strings.Contains(url, "github.com") {
		return "", "", false
	}
	var rest string
	if strings.HasPrefix(url, "git@") {
		if idx := strings.LastIndex(url, ":"); idx >= 0 {
			rest = url[idx+1:]
		} else {
			return "", "", false
		}
	} else {
		idx := strings.LastIndex(url, "github.com/")
		if idx < 0 {
			return "", "", false
		}
		rest = url[idx+len("github.com/"):]
	}
	parts := strings.Split(strings.TrimSuffix(rest, ".git"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// CloneURL builds the HTTPS clone URL for a repository, embedding the token
// when one is given so private repositories clone without prompting.
func CloneURL(fullName, token string) string {
	if token != "" {
		return fmt.Sprintf("https://%s@github.com/%s.git", token, fullName)
	}
	return fmt.Sprintf("https://github.com/%s.git", fullName)
}

package gitops

import (
	"context"
	"fmt"

	"github.com/google/go-github/v69/github"
)

// GitHubClient implements HostClient against the GitHub REST API.
type GitHubClient struct {
	client *github.Client
}

var _ HostClient = &GitHubClient{} // Compile-time check

// NewGitHubClient builds a host client. An empty token yields an
// unauthenticated client, which is enough for public-repo reads.
func NewGitHubClient(token string) *GitHubClient {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubClient{client: client}
}

// CreatePullRequest opens a pull request and returns its HTML URL.
func (c *GitHubClient) CreatePullRequest(ctx context.Context, owner, repo string, input PullRequestInput) (string, error) {
	pr, _, err := c.client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.Ptr(input.Title),
		Body:  github.Ptr(input.Body),
		Head:  github.Ptr(input.Head),
		Base:  github.Ptr(input.Base),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create PR for %s/%s: %w", owner, repo, err)
	}
	return pr.GetHTMLURL(), nil
}

// ListOrgRepos returns every repository in the organization, following
// pagination.
func (c *GitHubClient) ListOrgRepos(ctx context.Context, org string) ([]RemoteRepo, error) {
	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var repos []RemoteRepo
	for {
		page, resp, err := c.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repos for org %s: %w", org, err)
		}
		for _, r := range page {
			repos = append(repos, RemoteRepo{Name: r.GetName(), FullName: r.GetFullName(), Archived: r.GetArchived()})
		}
		if resp.NextPage == 0 {
			return repos, nil
		}
		opts.Page = resp.NextPage
	}
}

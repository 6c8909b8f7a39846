package gitops

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockHostClient is a testify mock for HostClient.
type MockHostClient struct {
	mock.Mock
}

var _ HostClient = &MockHostClient{} // Compile-time check

// CreatePullRequest is a mock method.
func (m *MockHostClient) CreatePullRequest(ctx context.Context, owner, repo string, input PullRequestInput) (string, error) {
	ret := m.Called(ctx, owner, repo, input)
	url, _ := ret.Get(0).(string)
	return url, ret.Error(1)
}

// ListOrgRepos is a mock method.
func (m *MockHostClient) ListOrgRepos(ctx context.Context, org string) ([]RemoteRepo, error) {
	ret := m.Called(ctx, org)
	repos, _ := ret.Get(0).([]RemoteRepo)
	return repos, ret.Error(1)
}

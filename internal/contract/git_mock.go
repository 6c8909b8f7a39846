package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// IsRepo implements the GitClient interface.
func (m *MockGitClient) IsRepo(ctx context.Context, repoPath string) bool {
	ret := m.Called(ctx, repoPath)
	return ret.Bool(0)
}

// HasUncommittedChanges implements the GitClient interface.
func (m *MockGitClient) HasUncommittedChanges(ctx context.Context, repoPath string) (bool, error) {
	ret := m.Called(ctx, repoPath)
	return ret.Bool(0), ret.Error(1)
}

// CurrentBranch implements the GitClient interface.
func (m *MockGitClient) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	branch, _ := ret.Get(0).(string)
	return branch, ret.Error(1)
}

// ListBranches implements the GitClient interface.
func (m *MockGitClient) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	branches, _ := ret.Get(0).([]string)
	return branches, ret.Error(1)
}

// RemoteURL implements the GitClient interface.
func (m *MockGitClient) RemoteURL(ctx context.Context, repoPath string, remote string) (string, error) {
	ret := m.Called(ctx, repoPath, remote)
	url, _ := ret.Get(0).(string)
	return url, ret.Error(1)
}

// CreateBranch implements the GitClient interface.
func (m *MockGitClient) CreateBranch(ctx context.Context, repoPath string, name string) error {
	ret := m.Called(ctx, repoPath, name)
	return ret.Error(0)
}

// Checkout implements the GitClient interface.
func (m *MockGitClient) Checkout(ctx context.Context, repoPath string, ref string) error {
	ret := m.Called(ctx, repoPath, ref)
	return ret.Error(0)
}

// RestorePaths implements the GitClient interface.
func (m *MockGitClient) RestorePaths(ctx context.Context, repoPath string, paths ...string) error {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, p := range paths {
		mockArgs = append(mockArgs, p)
	}
	ret := m.Called(mockArgs...)
	return ret.Error(0)
}

// CommitPaths implements the GitClient interface.
func (m *MockGitClient) CommitPaths(ctx context.Context, repoPath string, message string, paths ...string) error {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath, message)
	for _, p := range paths {
		mockArgs = append(mockArgs, p)
	}
	ret := m.Called(mockArgs...)
	return ret.Error(0)
}

// Push implements the GitClient interface.
func (m *MockGitClient) Push(ctx context.Context, repoPath string, remote string, branch string) error {
	ret := m.Called(ctx, repoPath, remote, branch)
	return ret.Error(0)
}

// DeleteBranch implements the GitClient interface.
func (m *MockGitClient) DeleteBranch(ctx context.Context, repoPath string, name string) error {
	ret := m.Called(ctx, repoPath, name)
	return ret.Error(0)
}

// CloneShallow implements the GitClient interface.
func (m *MockGitClient) CloneShallow(ctx context.Context, url string, dest string) error {
	ret := m.Called(ctx, url, dest)
	return ret.Error(0)
}

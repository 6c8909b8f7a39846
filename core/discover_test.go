package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/discovery"
	"github.com/huangsam/graveyard/internal/gitops"
)

func TestExecuteDiscoverOrg(t *testing.T) {
	cfg := &contract.Config{
		GitHubToken:   "tok",
		OrgConfigFile: filepath.Join(t.TempDir(), "org-services.yaml"),
		ExcludeRepos:  []string{"infra"},
	}

	host := &gitops.MockHostClient{}
	host.On("ListOrgRepos", mock.Anything, "acme").Return([]gitops.RemoteRepo{
		{Name: "payments", FullName: "acme/payments"},
		{Name: "infra", FullName: "acme/infra"},
		{Name: "empty", FullName: "acme/empty"},
	}, nil)

	// The fake clone drops a spec into the destination so discovery has
	// something to find; the "empty" repo clones but stays bare.
	git := &contract.MockGitClient{}
	git.On("CloneShallow", mock.Anything, mock.Anything, mock.MatchedBy(func(dest string) bool {
		return filepath.Base(dest) == "payments"
	})).Run(func(args mock.Arguments) {
		dest := args.String(2)
		require.NoError(t, os.MkdirAll(dest, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dest, "openapi.yaml"), []byte(scanTestSpec), 0o644))
	}).Return(nil)
	git.On("CloneShallow", mock.Anything, mock.Anything, mock.MatchedBy(func(dest string) bool {
		return filepath.Base(dest) == "empty"
	})).Run(func(args mock.Arguments) {
		require.NoError(t, os.MkdirAll(args.String(2), 0o755))
	}).Return(nil)

	require.NoError(t, ExecuteDiscoverOrg(context.Background(), cfg, host, git, "acme"))
	git.AssertExpectations(t)

	saved, err := discovery.LoadServices(cfg.OrgConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "acme", saved.Org)
	require.Len(t, saved.Services, 1)
	assert.Equal(t, "payments", saved.Services[0].Name)
	assert.Equal(t, "acme/payments", saved.Services[0].Repo)
	assert.Contains(t, saved.Services[0].Spec, "openapi.yaml")
}

func TestExecuteDiscoverOrgNoToken(t *testing.T) {
	cfg := &contract.Config{OrgConfigFile: filepath.Join(t.TempDir(), "org.yaml")}
	host := &gitops.MockHostClient{}
	git := &contract.MockGitClient{}

	err := ExecuteDiscoverOrg(context.Background(), cfg, host, git, "acme")
	assert.ErrorIs(t, err, gitops.ErrNoToken)
	assert.Empty(t, host.Calls)
}

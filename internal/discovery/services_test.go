package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/graveyard/schema"
)

const servicesYAML = `org: acme
services:
  - name: payments-api
    spec: services/payments/openapi.yaml
    logs: services/payments/access.jsonl
    repo: acme/payments-api
  - name: users-api
    spec: services/users/openapi.yaml
`

// TestLoadServices tests fleet config parsing.
func TestLoadServices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte(servicesYAML), 0o644))

	cfg, err := LoadServices(path)
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.Org)
	require.Len(t, cfg.Services, 2)
	assert.Equal(t, schema.ServiceConfig{
		Name: "payments-api",
		Spec: "services/payments/openapi.yaml",
		Logs: "services/payments/access.jsonl",
		Repo: "acme/payments-api",
	}, cfg.Services[0])
	assert.Equal(t, "users-api", cfg.Services[1].Name)
	assert.Empty(t, cfg.Services[1].Logs, "optional fields may be blank")
}

func TestLoadServicesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadServices(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unparsable yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("services: [unclosed\n"), 0o644))
		_, err := LoadServices(path)
		assert.Error(t, err)
	})

	t.Run("service without name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "anon.yaml")
		require.NoError(t, os.WriteFile(path, []byte("services:\n  - spec: a.yaml\n"), 0o644))
		_, err := LoadServices(path)
		assert.ErrorContains(t, err, "has no name")
	})
}

func TestSaveServicesRoundTrip(t *testing.T) {
	cfg := &schema.MultiServiceConfig{
		Org: "acme",
		Services: []schema.ServiceConfig{
			{Name: "payments-api", Spec: "a.yaml", Logs: "a.jsonl", Repo: "acme/payments-api"},
			{Name: "users-api", Spec: "b.yaml"},
		},
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, SaveServices(cfg, path))

	loaded, err := LoadServices(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

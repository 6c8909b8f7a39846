//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGraveyardWithMySQL tests the graveyard CLI with a MySQL history backend.
func TestGraveyardWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "graveyard",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/graveyard?parseTime=true", host, port.Port())
	runHistoryCycle(t, "mysql", connStr)
}

// TestGraveyardWithPostgres tests the graveyard CLI with a PostgreSQL history backend.
func TestGraveyardWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runHistoryCycle(t, "postgresql", connStr)
}

// runHistoryCycle scans the fixture service against the given backend and
// exercises the history commands against the populated store. The backend is
// configured through the environment to cover the viper env binding.
func runHistoryCycle(t *testing.T, backend, connStr string) {
	t.Helper()

	_ = os.Setenv("GRAVEYARD_HISTORY_BACKEND", backend)
	_ = os.Setenv("GRAVEYARD_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("GRAVEYARD_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("GRAVEYARD_HISTORY_DB_CONNECT") }()

	dir := t.TempDir()
	specPath, logsPath := writeFixtureService(t, dir)

	// Run graveyard history clear (works against an empty store)
	output, err := runGraveyard(t, dir, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, output, "Scan history cleared successfully")

	// Run graveyard scan twice so compare has two snapshots
	for range 2 {
		output, err = runGraveyard(t, dir,
			"scan", "--spec", specPath, "--logs", logsPath,
			"--service", "fixture", "--report", "")
		require.NoError(t, err)
		assert.Contains(t, output, "Scan saved to history database")
	}

	// Run graveyard history
	output, err = runGraveyard(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "fixture")

	// Run graveyard history status
	output, err = runGraveyard(t, dir, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, output, backend)

	// Run graveyard trends
	output, err = runGraveyard(t, dir, "trends", "fixture")
	require.NoError(t, err)
	assert.Contains(t, output, "fixture")
}

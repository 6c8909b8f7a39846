package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
)

const scanTestSpec = `openapi: 3.0.0
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        "200":
          description: OK
  /pets/{petId}:
    get:
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: OK
  /admin/legacy:
    delete:
      responses:
        "204":
          description: Deleted
`

// writeScanFixtures lays out a spec and an NDJSON access log in a temp dir.
func writeScanFixtures(t *testing.T, specYAML string, logLines []string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	specPath := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(specYAML), 0o644))
	logsPath := filepath.Join(dir, "access.jsonl")
	require.NoError(t, os.WriteFile(logsPath, []byte(strings.Join(logLines, "\n")+"\n"), 0o644))
	return specPath, logsPath
}

// logLine builds one NDJSON access-log line.
func logLine(method, path, caller string, ts time.Time) string {
	return fmt.Sprintf(`{"method":%q,"path":%q,"caller":%q,"timestamp":%q}`,
		method, path, caller, ts.Format(time.RFC3339))
}

func scanTestConfig(specPath, logsPath string) *contract.Config {
	return &contract.Config{
		SpecPath:    specPath,
		LogsPath:    logsPath,
		ServiceName: "petstore",
		Output:      schema.TextOut,
		ResultLimit: contract.DefaultResultLimit,
	}
}

func TestGetScanResults(t *testing.T) {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	specPath, logsPath := writeScanFixtures(t, scanTestSpec, []string{
		logLine("GET", "/pets", "svc-a", yesterday),
		logLine("GET", "/pets", "svc-b", yesterday),
		logLine("GET", "/pets/42", "svc-a", yesterday),
	})
	cfg := scanTestConfig(specPath, logsPath)

	results, record, err := GetScanResults(WithSuppressHeader(context.Background()), cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Ranked by confidence, so the never-called endpoint leads
	assert.Equal(t, "DELETE", results[0].Method)
	assert.Equal(t, "/admin/legacy", results[0].Path)
	assert.Equal(t, 100, results[0].ConfidenceScore)
	assert.Equal(t, []string{"Never called in logs"}, results[0].ConfidenceReasons)

	byKey := make(map[string]schema.EndpointUsageResult)
	for _, r := range results {
		byKey[schema.EndpointKey(r.Method, r.Path)] = r
	}
	assert.Equal(t, 2, byKey["GET /pets"].CallCount)
	assert.Equal(t, 2, byKey["GET /pets"].UniqueCallers)
	assert.Equal(t, 1, byKey["GET /pets/{petId}"].CallCount)

	require.NotNil(t, record)
	assert.Equal(t, "petstore", record.ServiceName)
	assert.Equal(t, specPath, record.SpecPath)
	assert.Equal(t, logsPath, record.LogsPath)
	assert.Equal(t, 3, record.TotalEndpoints)
	assert.Equal(t, 1, record.UnusedEndpoints)
	assert.True(t, record.Success)
	assert.Zero(t, record.ID) // not persisted yet
}

func TestGetScanResultsMissingInputs(t *testing.T) {
	// An empty repo dir gives file discovery nothing to find
	dir := t.TempDir()

	cfg := &contract.Config{RepoPath: dir}
	_, _, err := GetScanResults(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrNoSpecFound)

	specPath := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(scanTestSpec), 0o644))
	cfg = &contract.Config{SpecPath: specPath, RepoPath: dir}
	_, _, err = GetScanResults(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrNoLogsFound)
}

func TestGetScanResultsWindowFilter(t *testing.T) {
	now := time.Now().UTC()
	specPath, logsPath := writeScanFixtures(t, scanTestSpec, []string{
		// Old traffic falls outside the 30-day window
		logLine("GET", "/pets", "svc-a", now.AddDate(0, 0, -90)),
		logLine("GET", "/pets", "svc-a", now.AddDate(0, 0, -91)),
		logLine("GET", "/pets", "svc-b", now.Add(-24*time.Hour)),
	})
	cfg := scanTestConfig(specPath, logsPath)
	cfg.WindowDays = 30

	results, record, err := GetScanResults(WithSuppressHeader(context.Background()), cfg)
	require.NoError(t, err)

	byKey := make(map[string]schema.EndpointUsageResult)
	for _, r := range results {
		byKey[schema.EndpointKey(r.Method, r.Path)] = r
	}
	assert.Equal(t, 1, byKey["GET /pets"].CallCount)
	assert.Equal(t, []string{"svc-b"}, byKey["GET /pets"].Callers)
	assert.Equal(t, 2, record.UnusedEndpoints)
}

func TestSaveScanResults(t *testing.T) {
	record := &schema.ScanRecord{ServiceName: "petstore"}
	results := []schema.EndpointUsageResult{{Method: "GET", Path: "/pets"}}

	// No manager or store means nothing to save
	assert.False(t, SaveScanResults(record, results, nil))

	mgr := &contract.MockHistoryManager{}
	mgr.On("GetScanStore").Return(nil)
	assert.False(t, SaveScanResults(record, results, mgr))

	store := &contract.MockScanStore{}
	store.On("SaveScan", record, results).Return(int64(7), nil).Once()
	mgr = &contract.MockHistoryManager{}
	mgr.On("GetScanStore").Return(store)
	assert.True(t, SaveScanResults(record, results, mgr))
	store.AssertExpectations(t)

	// Store failures warn instead of propagating
	store = &contract.MockScanStore{}
	store.On("SaveScan", record, results).Return(int64(0), assert.AnError).Once()
	mgr = &contract.MockHistoryManager{}
	mgr.On("GetScanStore").Return(store)
	assert.False(t, SaveScanResults(record, results, mgr))
	store.AssertExpectations(t)
}

func TestExecuteScan(t *testing.T) {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	specPath, logsPath := writeScanFixtures(t, scanTestSpec, []string{
		logLine("GET", "/pets", "svc-a", yesterday),
	})
	cfg := scanTestConfig(specPath, logsPath)
	cfg.ReportFile = filepath.Join(filepath.Dir(specPath), "report.md")

	store := &contract.MockScanStore{}
	store.On("SaveScan", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	mgr := &contract.MockHistoryManager{}
	mgr.On("GetScanStore").Return(store)

	require.NoError(t, ExecuteScan(context.Background(), cfg, mgr))
	store.AssertExpectations(t)

	saved := store.Calls[0].Arguments.Get(0).(*schema.ScanRecord)
	assert.Equal(t, 3, saved.TotalEndpoints)
	assert.Equal(t, 2, saved.UnusedEndpoints)

	report, err := os.ReadFile(cfg.ReportFile)
	require.NoError(t, err)
	assert.Contains(t, string(report), "/admin/legacy")
}

func TestExecuteScanSkipHistory(t *testing.T) {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	specPath, logsPath := writeScanFixtures(t, scanTestSpec, []string{
		logLine("GET", "/pets", "svc-a", yesterday),
	})
	cfg := scanTestConfig(specPath, logsPath)

	store := &contract.MockScanStore{}
	mgr := &contract.MockHistoryManager{}
	mgr.On("GetScanStore").Return(store)

	ctx := WithSkipHistory(context.Background())
	require.NoError(t, ExecuteScan(ctx, cfg, mgr))
	store.AssertNotCalled(t, "SaveScan", mock.Anything, mock.Anything)
}

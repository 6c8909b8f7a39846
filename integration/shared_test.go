//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a shared graveyard binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// fixtureSpec declares the endpoints of a small service: two collection
// operations, two item operations and one endpoint no log ever touches.
const fixtureSpec = `openapi: 3.0.0
info:
  title: Fixture Service
  version: 1.0.0
paths:
  /users:
    get:
      responses:
        '200':
          description: OK
    post:
      responses:
        '201':
          description: Created
  /users/{id}:
    get:
      responses:
        '200':
          description: OK
    delete:
      responses:
        '204':
          description: Deleted
  /posts:
    get:
      responses:
        '200':
          description: OK
`

// fixtureLogs exercises GET /users twice from distinct callers and the
// parameterized GET once, and includes one malformed line the log source
// must skip.
const fixtureLogs = `{"method":"GET","path":"/users","timestamp":"2025-06-01T10:00:00Z","caller":"svc-a"}
{"method":"GET","path":"/users","timestamp":"2025-06-02T11:30:00Z","caller":"svc-b"}
{"method":"GET","path":"/users/42","timestamp":"2025-05-20T09:00:00Z","user":"svc-a"}
not json at all
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getGraveyardBinary returns the path to the graveyard binary, building it once if needed.
func getGraveyardBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "graveyard-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "graveyard")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build graveyard: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeFixtureService writes the fixture spec and logs into dir and returns
// their paths.
func writeFixtureService(t *testing.T, dir string) (specPath, logsPath string) {
	t.Helper()
	specPath = filepath.Join(dir, "openapi.yaml")
	logsPath = filepath.Join(dir, "access.jsonl")
	if err := os.WriteFile(specPath, []byte(fixtureSpec), 0o644); err != nil {
		t.Fatalf("cannot write fixture spec: %v", err)
	}
	if err := os.WriteFile(logsPath, []byte(fixtureLogs), 0o644); err != nil {
		t.Fatalf("cannot write fixture logs: %v", err)
	}
	return specPath, logsPath
}

// runGraveyard runs the shared binary in dir and returns its combined output.
func runGraveyard(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getGraveyardBinary(), args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}

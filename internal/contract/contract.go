// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// GitClient defines the Git operations needed for automated spec cleanup.
// This allows the prune workflow to be tested without a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository State ---

	// IsRepo reports whether the path sits inside a Git work tree.
	IsRepo(ctx context.Context, repoPath string) bool

	// HasUncommittedChanges reports whether the work tree is dirty.
	HasUncommittedChanges(ctx context.Context, repoPath string) (bool, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context, repoPath string) (string, error)

	// ListBranches returns the local branch names.
	ListBranches(ctx context.Context, repoPath string) ([]string, error)

	// RemoteURL returns the fetch URL of the named remote.
	RemoteURL(ctx context.Context, repoPath string, remote string) (string, error)

	// --- Branch / Commit Workflow ---

	// CreateBranch creates and checks out a new branch.
	CreateBranch(ctx context.Context, repoPath string, name string) error

	// Checkout switches the work tree to an existing ref.
	Checkout(ctx context.Context, repoPath string, ref string) error

	// RestorePaths discards uncommitted changes to the given paths.
	RestorePaths(ctx context.Context, repoPath string, paths ...string) error

	// CommitPaths stages the given paths and commits them with the message.
	CommitPaths(ctx context.Context, repoPath string, message string, paths ...string) error

	// Push pushes a branch to the named remote, setting upstream.
	Push(ctx context.Context, repoPath string, remote string, branch string) error

	// DeleteBranch force-deletes a local branch.
	DeleteBranch(ctx context.Context, repoPath string, name string) error

	// --- Cloning ---

	// CloneShallow clones a repository at depth 1 into dest.
	CloneShallow(ctx context.Context, url string, dest string) error
}

// HistoryManager defines the interface for managing the scan history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetScanStore() ScanStore
}

// ScanStore defines the interface for scan history storage.
// This allows mocking the store for testing.
type ScanStore interface {
	// SaveScan persists a scan with its per-endpoint results and returns
	// the new scan ID. Endpoint totals are derived from the results.
	SaveScan(record *schema.ScanRecord, results []schema.EndpointUsageResult) (int64, error)

	// GetScans returns scans newest first, optionally filtered by service.
	// A non-positive limit returns everything.
	GetScans(serviceName string, limit int) ([]schema.ScanRecord, error)

	// GetScanByID returns a scan with its endpoint snapshots, or nil when
	// no scan has that ID.
	GetScanByID(id int64) (*schema.ScanDetail, error)

	// GetLatestScan returns the most recent scan for a service, or nil
	// when the service has never been scanned.
	GetLatestScan(serviceName string) (*schema.ScanDetail, error)

	// GetScansSince returns a service's successful scans at or after the
	// cutoff, oldest first.
	GetScansSince(serviceName string, since time.Time) ([]schema.ScanRecord, error)

	// GetServices returns the distinct service names, sorted.
	GetServices() ([]string, error)

	// GetAllSnapshots returns every endpoint snapshot joined with its
	// scan metadata, for bulk export.
	GetAllSnapshots() ([]schema.SnapshotRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all stored scans and snapshots.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/discovery"
	"github.com/huangsam/graveyard/internal/logsource"
	"github.com/huangsam/graveyard/internal/openapi"
	"github.com/huangsam/graveyard/internal/outwriter"
	"github.com/huangsam/graveyard/internal/report"
	"github.com/huangsam/graveyard/schema"
)

// Input-resolution failures, surfaced verbatim by the CLI.
var (
	ErrNoSpecFound = errors.New("could not find OpenAPI spec, please specify with --spec")
	ErrNoLogsFound = errors.New("could not find log files, please specify with --logs")
)

// GetScanResults runs the scan pipeline: resolve the spec and log inputs,
// parse endpoint templates, stream the access logs and score every endpoint.
// The returned record describes the run but has not been persisted; callers
// decide whether to hand it to SaveScanResults. Progress printing honors
// WithSuppressHeader so protocol servers can share this path.
func GetScanResults(ctx context.Context, cfg *contract.Config) ([]schema.EndpointUsageResult, *schema.ScanRecord, error) {
	start := time.Now()
	quiet := shouldSuppressHeader(ctx)

	discovery.FillScanDefaults(cfg)
	if cfg.SpecPath == "" {
		return nil, nil, ErrNoSpecFound
	}
	if cfg.LogsPath == "" {
		return nil, nil, ErrNoLogsFound
	}

	if !quiet {
		printScanHeader(cfg)
	}

	templates, err := openapi.LoadEndpoints(cfg.SpecPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading spec: %w", err)
	}
	if !quiet {
		fmt.Printf("Found %d endpoints\n", len(templates))
	}

	totalEntries, err := logsource.Count(cfg.LogsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading logs: %w", err)
	}
	if !quiet {
		fmt.Printf("Found %d log entries\n", totalEntries)
	}

	entries, err := logsource.Stream(cfg.LogsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading logs: %w", err)
	}

	now := time.Now().UTC()
	if cutoff := cfg.LogWindowCutoff(now); !cutoff.IsZero() {
		entries = logsource.Filter(entries, cutoff)
	}

	// The log sequence is lazy, so the post-filter entry count is only
	// known once the aggregation pass has consumed it.
	var analyzed int
	counted := func(yield func(schema.LogEntry) bool) {
		for entry := range entries {
			analyzed++
			if !yield(entry) {
				return
			}
		}
	}

	results := AnalyzeUsage(templates, counted, now)
	if !quiet && cfg.WindowDays > 0 {
		fmt.Printf("Filtered to %d entries within %d days\n", analyzed, cfg.WindowDays)
	}

	record := &schema.ScanRecord{
		Timestamp:           now,
		ServiceName:         cfg.ServiceName,
		SpecPath:            cfg.SpecPath,
		LogsPath:            cfg.LogsPath,
		TotalEndpoints:      len(results),
		UnusedEndpoints:     CountUnused(results),
		ScanDurationSeconds: time.Since(start).Seconds(),
		Success:             true,
	}
	return results, record, nil
}

// SaveScanResults persists a finished scan to the history store. Failures
// only warn: a broken history database should never sink a scan whose
// results are already in hand.
func SaveScanResults(record *schema.ScanRecord, results []schema.EndpointUsageResult, mgr contract.HistoryManager) bool {
	if mgr == nil {
		return false
	}
	store := mgr.GetScanStore()
	if store == nil {
		return false
	}
	if _, err := store.SaveScan(record, results); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not save to database: %v\n", err)
		return false
	}
	return true
}

// ExecuteScan runs a scan and renders the outcome: console table, unused
// summary, optional Markdown report, history save and the follow-up hint.
// It serves as the entry point for the 'scan' command.
func ExecuteScan(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	results, record, err := GetScanResults(ctx, cfg)
	if err != nil {
		return err
	}

	// The display limit only trims the table; the report, summary and
	// history record keep the full result set.
	fmt.Println()
	writer := outwriter.NewOutWriter()
	if err := writer.WriteUsage(TopResults(results, cfg.ResultLimit), cfg, time.Since(start)); err != nil {
		return err
	}

	printUnusedSummary(results)

	if cfg.ReportFile != "" {
		markdown := report.Markdown(results, cfg.ServiceName, time.Now().UTC())
		if err := os.WriteFile(cfg.ReportFile, []byte(markdown), 0o644); err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", cfg.ReportFile)
	}

	if !shouldSkipHistory(ctx) {
		if SaveScanResults(record, results, mgr) {
			fmt.Println("Scan saved to history database")
		}
	}

	if cfg.UseEmojis {
		fmt.Println("\n💡 Next: Run 'graveyard prune --dry-run' to preview cleanup")
	} else {
		fmt.Println("\nNext: Run 'graveyard prune --dry-run' to preview cleanup")
	}
	return nil
}

// printScanHeader prints the 3-line header identifying the scan inputs.
func printScanHeader(cfg *contract.Config) {
	fmt.Printf("Scanning %s\n", cfg.ServiceName)
	if cfg.UseEmojis {
		fmt.Printf("📄 Spec: %s\n", cfg.SpecPath)
		fmt.Printf("📊 Logs: %s\n\n", cfg.LogsPath)
	} else {
		fmt.Printf("Spec: %s\n", cfg.SpecPath)
		fmt.Printf("Logs: %s\n\n", cfg.LogsPath)
	}
}

// printUnusedSummary prints the unused-endpoint counts after the table.
// The high-confidence count is always measured at the default threshold,
// regardless of any --threshold override.
func printUnusedSummary(results []schema.EndpointUsageResult) {
	unused := CountUnused(results)
	if unused == 0 {
		return
	}
	high := len(FilterByThreshold(results, contract.DefaultThreshold))
	fmt.Println()
	fmt.Printf("Found %d unused endpoints\n", unused)
	fmt.Printf("%d with high confidence (>=%d)\n", high, contract.DefaultThreshold)
}

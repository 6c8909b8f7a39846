package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/discovery"
	"github.com/huangsam/graveyard/schema"
)

// ScanServices runs one scan per service on a bounded worker pool. Outcomes
// come back in the same order as the services slice; a failing service
// yields an error outcome and never aborts the batch.
func ScanServices(ctx context.Context, cfg *contract.Config, services []schema.ServiceConfig) []schema.ServiceScanOutcome {
	outcomes := make([]schema.ServiceScanOutcome, len(services))
	jobCh := make(chan int, len(services))

	workers := cfg.Workers
	if workers <= 0 {
		workers = contract.DefaultWorkers
	}

	// Per-service progress lines would interleave across workers.
	scanCtx := WithSuppressHeader(ctx)

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for idx := range jobCh {
				// Each worker writes to a unique index, which is safe.
				outcomes[idx] = scanOneService(scanCtx, cfg, &services[idx])
			}
		})
	}
	for i := range services {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()
	return outcomes
}

// scanOneService scans a single fleet member with its own config clone, so
// services never share aggregation state.
func scanOneService(ctx context.Context, base *contract.Config, svc *schema.ServiceConfig) schema.ServiceScanOutcome {
	outcome := schema.ServiceScanOutcome{Service: svc.Name, Repo: svc.Repo}

	results, record, err := GetScanResults(ctx, base.CloneForService(svc))
	if err != nil {
		outcome.Status = schema.ScanFailure
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Status = schema.ScanSuccess
	outcome.EndpointsTotal = record.TotalEndpoints
	outcome.EndpointsUnused = record.UnusedEndpoints
	outcome.Results = results
	return outcome
}

// AggregateReport rolls per-service outcomes into the fleet-wide report:
// summary counts, the unused percentage and the endpoints declared by more
// than one service.
func AggregateReport(outcomes []schema.ServiceScanOutcome) *schema.MultiScanReport {
	summary := schema.MultiScanSummary{TotalServices: len(outcomes)}
	declaredBy := make(map[string][]string)

	for _, outcome := range outcomes {
		summary.TotalEndpoints += outcome.EndpointsTotal
		summary.TotalUnused += outcome.EndpointsUnused
		if outcome.Status != schema.ScanSuccess {
			summary.FailedScans++
			continue
		}
		summary.SuccessfulScans++
		for _, result := range outcome.Results {
			key := schema.EndpointKey(result.Method, result.Path)
			declaredBy[key] = append(declaredBy[key], outcome.Service)
		}
	}
	if summary.TotalEndpoints > 0 {
		summary.UnusedPercentage = schema.RoundTo(100*float64(summary.TotalUnused)/float64(summary.TotalEndpoints), 2)
	}

	duplicates := make(map[string][]string)
	for key, owners := range declaredBy {
		if len(owners) > 1 {
			duplicates[key] = owners
		}
	}

	return &schema.MultiScanReport{
		Summary:            summary,
		DuplicateEndpoints: duplicates,
		DuplicateCount:     len(duplicates),
		Services:           outcomes,
	}
}

// SaveMultiReport writes the aggregated report as indented JSON.
func SaveMultiReport(rep *schema.MultiScanReport, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ExecuteMultiScan scans every service in a fleet config in parallel and
// writes the aggregated JSON report. Entry point for the 'scan-multi'
// command.
func ExecuteMultiScan(ctx context.Context, cfg *contract.Config) error {
	if cfg.ServicesConfigPath == "" {
		return errors.New("--config is required")
	}

	fmt.Printf("Loading multi-service config from %s...\n", cfg.ServicesConfigPath)
	multiCfg, err := discovery.LoadServices(cfg.ServicesConfigPath)
	if err != nil {
		return err
	}

	fmt.Printf("Scanning %d services with %d workers...\n", len(multiCfg.Services), cfg.Workers)
	outcomes := ScanServices(ctx, cfg, multiCfg.Services)

	fmt.Println("\nGenerating aggregated report...")
	rep := AggregateReport(outcomes)
	if err := SaveMultiReport(rep, cfg.MultiReportFile); err != nil {
		return fmt.Errorf("cannot save report: %w", err)
	}

	printMultiScanSummary(rep)
	fmt.Printf("\nFull report saved to: %s\n", cfg.MultiReportFile)
	return nil
}

// printMultiScanSummary prints the banner-framed fleet totals.
func printMultiScanSummary(rep *schema.MultiScanReport) {
	banner := strings.Repeat("=", 60)
	fmt.Println("\n" + banner)
	fmt.Println("MULTI-SERVICE SCAN SUMMARY")
	fmt.Println(banner)
	fmt.Printf("Total services scanned: %d\n", rep.Summary.TotalServices)
	fmt.Printf("Successful scans: %d\n", rep.Summary.SuccessfulScans)
	fmt.Printf("Failed scans: %d\n", rep.Summary.FailedScans)
	fmt.Printf("Total endpoints: %d\n", rep.Summary.TotalEndpoints)
	fmt.Printf("Total unused: %d (%v%%)\n", rep.Summary.TotalUnused, rep.Summary.UnusedPercentage)
	fmt.Printf("Duplicate endpoints: %d\n", rep.DuplicateCount)
	fmt.Println(banner)
}

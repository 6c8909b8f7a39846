// Package main provides a performance benchmarking tool for the Graveyard CLI.
// It measures scan times across synthetic workloads of different sizes,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - graveyard binary installed and available in PATH
//
// Usage: go run benchmark/main.go [workload-dir]
//
//	workload-dir: Directory where synthetic specs and logs are generated
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Workload      string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkloadBase  string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Workloads     []WorkloadSpec
}

// WorkloadSpec describes one synthetic service: how many endpoints its spec
// declares and how many log lines its traffic file contains.
type WorkloadSpec struct {
	Name      string
	Endpoints int
	LogLines  int
	Gzip      bool
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [workload-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workloadBase := os.Args[1]

	config := BenchmarkConfig{
		WorkloadBase:  workloadBase,
		Timeout:       5 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Workloads: []WorkloadSpec{
			{Name: "small", Endpoints: 50, LogLines: 10_000},
			{Name: "medium", Endpoints: 200, LogLines: 100_000},
			{Name: "medium-gz", Endpoints: 200, LogLines: 100_000, Gzip: true},
			{Name: "large", Endpoints: 500, LogLines: 1_000_000},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating workloads under %s...\n", config.WorkloadBase)
	if err := generateWorkloads(config); err != nil {
		fmt.Printf("Workload generation failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the graveyard binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("graveyard"); err != nil {
		return fmt.Errorf("graveyard binary not found in PATH")
	}
	return nil
}

// generateWorkloads writes one spec and one log file per workload, plus a
// services config covering the whole set for the multi-service run.
func generateWorkloads(config BenchmarkConfig) error {
	var services strings.Builder
	services.WriteString("services:\n")

	for _, wl := range config.Workloads {
		dir := filepath.Join(config.WorkloadBase, wl.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		specPath := filepath.Join(dir, "openapi.yaml")
		if err := os.WriteFile(specPath, []byte(generateSpec(wl.Endpoints)), 0o644); err != nil {
			return err
		}

		logsPath := filepath.Join(dir, "access.jsonl")
		if wl.Gzip {
			logsPath += ".gz"
		}
		if err := generateLogs(logsPath, wl); err != nil {
			return err
		}

		// Paths are relative to the workload base, where scan-multi runs.
		fmt.Fprintf(&services, "  - name: %s\n    spec: %s\n    logs: %s\n",
			wl.Name, filepath.Join(wl.Name, "openapi.yaml"), filepath.Join(wl.Name, filepath.Base(logsPath)))
	}

	servicesPath := filepath.Join(config.WorkloadBase, "services.yaml")
	return os.WriteFile(servicesPath, []byte(services.String()), 0o644)
}

// generateSpec builds an OpenAPI document with the requested number of
// operations. Every third path is parameterized to exercise template matching.
func generateSpec(endpoints int) string {
	var b strings.Builder
	b.WriteString("openapi: 3.0.0\n")
	b.WriteString("info:\n  title: Synthetic Service\n  version: 1.0.0\npaths:\n")
	for i := range endpoints {
		if i%3 == 0 {
			fmt.Fprintf(&b, "  /resource%d/{id}:\n", i)
		} else {
			fmt.Fprintf(&b, "  /resource%d:\n", i)
		}
		b.WriteString("    get:\n      responses:\n        '200':\n          description: OK\n")
	}
	return b.String()
}

// generateLogs writes NDJSON request lines against the workload's spec. Only
// the first 60% of endpoints receive traffic, so every run has both used and
// unused endpoints to score.
func generateLogs(path string, wl WorkloadSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", path, closeErr)
		}
	}()

	var sink io.Writer = file
	var gz *gzip.Writer
	if wl.Gzip {
		gz = gzip.NewWriter(file)
		sink = gz
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	active := wl.Endpoints * 6 / 10
	if active == 0 {
		active = 1
	}
	for i := range wl.LogLines {
		endpoint := i % active
		reqPath := fmt.Sprintf("/resource%d", endpoint)
		if endpoint%3 == 0 {
			reqPath = fmt.Sprintf("/resource%d/%d", endpoint, i%97)
		}
		line := fmt.Sprintf("{\"method\":\"GET\",\"path\":\"%s\",\"timestamp\":\"%s\",\"caller\":\"caller-%d\"}\n",
			reqPath, base.Add(time.Duration(i)*time.Second).Format(time.RFC3339), i%10)
		if _, err := sink.Write([]byte(line)); err != nil {
			return err
		}
	}

	if gz != nil {
		return gz.Close()
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured workloads
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d workloads, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Workloads), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, wl := range config.Workloads {
		fmt.Printf("Benchmarking %s (%d endpoints, %d log lines)\n", wl.Name, wl.Endpoints, wl.LogLines)

		dir := filepath.Join(config.WorkloadBase, wl.Name)
		logsName := "access.jsonl"
		if wl.Gzip {
			logsName += ".gz"
		}
		extraArgs := fmt.Sprintf("--spec openapi.yaml --logs %s --service %s --report=", logsName, wl.Name)
		result := runBenchmarkSuite(config, wl.Name, dir, "scan", "scan analysis", extraArgs)
		results = append(results, result)
	}

	// Multi-service scan over the full set
	extraArgs := "--config services.yaml --workers 4"
	result := runBenchmarkSuite(config, "fleet", config.WorkloadBase, "scan-multi", "multi-service scan", extraArgs)
	results = append(results, result)

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, workload, dir, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, workload)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dir, command, extraArgs, historyBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs against a fresh SQLite store
	_ = os.Remove(filepath.Join(dir, "benchmark_history.db"))
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Workload:      workload,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a graveyard command multiple times with the specified history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dir, command, extraArgs, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--history-backend", historyBackend}
	if historyBackend == "sqlite" {
		// Relative to dir, which is where the command runs.
		args = append(args, "--history-db-connect", "benchmark_history.db")
	}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("graveyard", args...)
		cmd.Dir = dir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	if command == "scan-multi" {
		completionPhrase = "MULTI-SERVICE SCAN SUMMARY"
	} else {
		completionPhrase = "Analysis completed in"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/graveyard_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"workload", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Workload, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "scan", "Scan Analysis:")
	printCommandSummary(results, "scan-multi", "Multi-Service Scan:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-history: %s, Cold: %s, Warm: %s\n", result.Workload, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}

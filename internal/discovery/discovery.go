// Package discovery locates OpenAPI specs and access logs on disk when the
// caller does not name them explicitly.
package discovery

import (
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/huangsam/graveyard/internal/contract"
	"gopkg.in/yaml.v3"
)

// Spec file names checked in order, per directory.
var specNames = []string{
	"openapi.yaml", "openapi.yml",
	"api-spec.yaml", "api-spec.yml",
	"swagger.yaml", "swagger.yml",
	"api.yaml", "api.yml",
}

// Directories searched for spec files, relative to the start dir.
var specDirs = []string{".", "spec", "specs", "api", "docs", "openapi"}

// Log file names checked per directory, plus a *.jsonl glob.
var logNames = []string{
	"access.jsonl", "access.log",
	"api.jsonl", "api.log",
	"logs.jsonl", "logs.json",
}

// Directories searched for log files, relative to the start dir.
var logDirs = []string{".", "logs", "data", "samples"}

// FindSpec returns the first candidate under startDir that verifies as an
// OpenAPI document, meaning it parses as YAML and carries an openapi or
// swagger key. Search order is directory-major, then name.
func FindSpec(startDir string) (string, bool) {
	for _, dir := range specDirs {
		for _, name := range specNames {
			path := filepath.Join(startDir, dir, name)
			if isOpenAPIDocument(path) {
				return path, true
			}
		}
	}
	return "", false
}

// isOpenAPIDocument reports whether the file at path parses as YAML with a
// version marker key. Unreadable or unparsable files are just skipped.
func isOpenAPIDocument(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, hasOpenAPI := doc["openapi"]
	_, hasSwagger := doc["swagger"]
	return hasOpenAPI || hasSwagger
}

// FindLogs returns every log file candidate under startDir, deduplicated
// and sorted. Known names are checked per directory along with any *.jsonl
// file.
func FindLogs(startDir string) []string {
	found := make(map[string]struct{})
	for _, dir := range logDirs {
		base := filepath.Join(startDir, dir)
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			continue
		}
		for _, name := range logNames {
			path := filepath.Join(base, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				found[path] = struct{}{}
			}
		}
		matches, err := filepath.Glob(filepath.Join(base, "*.jsonl"))
		if err != nil {
			continue
		}
		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && !info.IsDir() {
				found[match] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(found))
}

// FillScanDefaults resolves missing spec and log paths before a scan.
// Explicit flags and config-file values arrive already set on cfg, so only
// blank paths fall through to filesystem discovery. The first log candidate
// in sorted order wins.
func FillScanDefaults(cfg *contract.Config) {
	if cfg.SpecPath == "" {
		if spec, ok := FindSpec(cfg.RepoPath); ok {
			cfg.SpecPath = spec
		}
	}
	if cfg.LogsPath == "" {
		if logs := FindLogs(cfg.RepoPath); len(logs) > 0 {
			cfg.LogsPath = logs[0]
		}
	}
}

// Package logsource streams access-log entries from newline-delimited JSON
// files, plain or gzip-compressed, without loading them into memory.
package logsource

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"github.com/klauspost/compress/gzip"
)

// maxLineBytes bounds a single log line; entries are small JSON objects but
// request paths and caller blobs can get long.
const maxLineBytes = 1 << 20

// Stream returns a single-use sequence of log entries from the file at path.
// Files ending in .gz are decompressed transparently. Blank lines are
// skipped; lines that fail to decode are skipped with a warning that names
// the line number. The file closes when iteration finishes, so the sequence
// must be consumed exactly once.
func Stream(path string) (iter.Seq[schema.LogEntry], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}
	var reader io.Reader = file
	var gz *gzip.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err = gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("cannot open gzip log %s: %w", path, err)
		}
		reader = gz
	}
	return func(yield func(schema.LogEntry) bool) {
		defer func() {
			if gz != nil {
				_ = gz.Close()
			}
			_ = file.Close()
		}()
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var entry schema.LogEntry
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				contract.LogWarn(fmt.Sprintf("skipping invalid JSON on line %d", lineNum), err)
				continue
			}
			if !yield(entry) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			contract.LogWarn("log stream ended early", err)
		}
	}, nil
}

// Count returns the number of valid entries in the file at path.
func Count(path string) (int, error) {
	entries, err := Stream(path)
	if err != nil {
		return 0, err
	}
	count := 0
	for range entries {
		count++
	}
	return count, nil
}

// Filter drops entries whose timestamp parses and falls before cutoff.
// Entries with a missing or unparsable timestamp pass through, so a time
// window never hides traffic that merely lacks clean timestamps. A zero
// cutoff passes everything.
func Filter(entries iter.Seq[schema.LogEntry], cutoff time.Time) iter.Seq[schema.LogEntry] {
	return func(yield func(schema.LogEntry) bool) {
		for entry := range entries {
			if !cutoff.IsZero() && entry.Timestamp != "" {
				if ts, ok := schema.ParseTimestamp(entry.Timestamp); ok && ts.Before(cutoff) {
					continue
				}
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Package report renders analysis results as Markdown for report files and
// pull request bodies.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// maxReasonLen caps the reasons column so table rows stay readable.
const maxReasonLen = 60

// highConfidenceFloor is the score treated as high confidence in summaries.
const highConfidenceFloor = 80

// Markdown renders the full scan report: header stats, the endpoint table
// and the score legend. Results are rendered in the order given.
func Markdown(results []schema.EndpointUsageResult, serviceName string, generatedAt time.Time) string {
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# API Endpoint Usage Analysis: %s\n", serviceName)
	fmt.Fprintf(&b, "**Generated:** %s UTC\n", generatedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Endpoints:** %d\n", len(results))

	unused := 0
	highConfidence := 0
	for i := range results {
		if results[i].IsUnused() {
			unused++
		}
		if results[i].ConfidenceScore >= highConfidenceFloor {
			highConfidence++
		}
	}
	fmt.Fprintf(&b, "**Unused Endpoints:** %d\n", unused)
	if len(results) > 0 {
		fmt.Fprintf(&b, "**High Confidence Unused (≥%d):** %d\n", highConfidenceFloor, highConfidence)
	}

	b.WriteString("\n## Endpoint Analysis\n")
	b.WriteString("\n")
	b.WriteString("| Confidence | Method | Path | Calls | Last Seen | Callers | Reasons |\n")
	b.WriteString("|------------|--------|------|-------|-----------|---------|----------|\n")
	for i := range results {
		r := &results[i]
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s | %d | %s |\n",
			r.ConfidenceScore, r.Method, r.Path, r.CallCount,
			schema.FormatLastSeen(r.LastSeen), r.UniqueCallers,
			schema.JoinTruncated(r.ConfidenceReasons, "; ", maxReasonLen))
	}

	b.WriteString("\n## Confidence Score Legend\n")
	b.WriteString("\n")
	b.WriteString("- **100**: Never called in logs\n")
	b.WriteString("- **80-99**: Very likely unused (low calls, old, few callers)\n")
	b.WriteString("- **60-79**: Possibly unused (some usage but limited)\n")
	b.WriteString("- **40-59**: Moderate usage\n")
	b.WriteString("- **0-39**: Actively used\n")
	return b.String()
}

// RemovedEndpointsSummary renders the per-endpoint blocks embedded in a
// cleanup pull request body.
func RemovedEndpointsSummary(results []schema.EndpointUsageResult) string {
	lines := []string{"## Removed Endpoints\n"}
	for i := range results {
		r := &results[i]
		lines = append(lines,
			fmt.Sprintf("### %s `%s`", r.Method, r.Path),
			fmt.Sprintf("- **Confidence Score:** %d/100", r.ConfidenceScore),
			fmt.Sprintf("- **Call Count:** %d", r.CallCount),
			fmt.Sprintf("- **Last Seen:** %s", schema.FormatLastSeen(r.LastSeen)),
			fmt.Sprintf("- **Reasons:** %s\n", strings.Join(r.ConfidenceReasons, "; ")),
		)
	}
	return strings.Join(lines, "\n")
}

// PruneBody builds the full pull request body for an automated cleanup.
func PruneBody(removedCount, threshold int, results []schema.EndpointUsageResult) string {
	var b strings.Builder
	b.WriteString("## 🪦 API Graveyard: Automated Cleanup\n\n")
	fmt.Fprintf(&b, "Automatically removed **%d** unused endpoint(s) with confidence score >= %d.\n\n", removedCount, threshold)
	b.WriteString(RemovedEndpointsSummary(results))
	b.WriteString("\n\n---\n")
	b.WriteString("*🤖 Generated by [graveyard](https://github.com/huangsam/graveyard)*")
	return b.String()
}

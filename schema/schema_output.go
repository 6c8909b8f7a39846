package schema

// EnrichedUsageResult adds presentation data to an EndpointUsageResult.
type EnrichedUsageResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	EndpointUsageResult
}

// GetPlainLabel returns a plain text label indicating how strong a removal
// candidate an endpoint is, based on its unused-confidence score.
func GetPlainLabel(score int) string {
	switch {
	case score >= 80:
		return "Critical"
	case score >= 60:
		return "High"
	case score >= 40:
		return "Moderate"
	default:
		return "Low"
	}
}

// EnrichResults adds rank and label to a list of usage results.
func EnrichResults(results []EndpointUsageResult) []EnrichedUsageResult {
	output := make([]EnrichedUsageResult, len(results))
	for i, r := range results {
		output[i] = EnrichedUsageResult{
			Rank:                i + 1,
			Label:               GetPlainLabel(r.ConfidenceScore),
			EndpointUsageResult: r,
		}
	}
	return output
}

package core

import (
	"fmt"
	"time"
)

// Confidence scoring constants.
const (
	baseScore = 50
	minScore  = 0
	maxScore  = 100

	// maxCallersShown caps the caller sample carried in results.
	maxCallersShown = 10
)

// scoreUsage computes the unused-confidence score and its explanation for
// one endpoint after all logs are consumed. Zero calls is the certain case
// and short-circuits to the maximum score. Everything else starts from a
// neutral base and moves through three adjustment bands, in a fixed order
// so the reason list is reproducible run to run:
//
//  1. Call frequency: fewer matched calls push the score up.
//  2. Recency: the longer since the last call, the higher the score.
//  3. Caller diversity: fewer distinct callers push the score up.
//
// The final score is clamped to [0, 100].
func scoreUsage(callCount int, lastSeen *time.Time, uniqueCallers int, now time.Time) (int, []string) {
	if callCount == 0 {
		return maxScore, []string{"Never called in logs"}
	}

	score := baseScore
	var reasons []string

	switch {
	case callCount == 1:
		score += 30
		reasons = append(reasons, "Called only once")
	case callCount <= 5:
		score += 20
		reasons = append(reasons, fmt.Sprintf("Very low call count (%d calls)", callCount))
	case callCount <= 20:
		score += 10
		reasons = append(reasons, fmt.Sprintf("Low call count (%d calls)", callCount))
	case callCount <= 100:
		score -= 10
		reasons = append(reasons, fmt.Sprintf("Moderate call count (%d calls)", callCount))
	default:
		score -= 30
		reasons = append(reasons, fmt.Sprintf("High call count (%d calls)", callCount))
	}

	if lastSeen != nil {
		daysAgo := int(now.Sub(*lastSeen).Hours() / 24)
		switch {
		case daysAgo > 365:
			score += 20
			reasons = append(reasons, fmt.Sprintf("Last seen %d days ago (>1 year)", daysAgo))
		case daysAgo > 180:
			score += 15
			reasons = append(reasons, fmt.Sprintf("Last seen %d days ago (>6 months)", daysAgo))
		case daysAgo > 90:
			score += 10
			reasons = append(reasons, fmt.Sprintf("Last seen %d days ago (>3 months)", daysAgo))
		case daysAgo > 30:
			score += 5
			reasons = append(reasons, fmt.Sprintf("Last seen %d days ago (>1 month)", daysAgo))
		default:
			score -= 10
			reasons = append(reasons, fmt.Sprintf("Recently active (%d days ago)", daysAgo))
		}
	}

	switch {
	case uniqueCallers == 1:
		score += 10
		reasons = append(reasons, "Single caller only")
	case uniqueCallers <= 3:
		// Zero is possible when no matching entry carried an identity.
		score += 5
		reasons = append(reasons, fmt.Sprintf("Few unique callers (%d)", uniqueCallers))
	case uniqueCallers > 10:
		score -= 10
		reasons = append(reasons, fmt.Sprintf("Many unique callers (%d)", uniqueCallers))
	}

	return clampScore(score), reasons
}

// clampScore bounds a score to the [minScore, maxScore] range.
func clampScore(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

package core

import "context"

// Context keys for scan options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	skipHistoryKey    contextKey = "skipHistory"
)

// WithSuppressHeader sets whether scan headers should be suppressed in the context
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether scan headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithSkipHistory sets whether history persistence should be skipped in the context
func WithSkipHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipHistoryKey, true)
}

// shouldSkipHistory returns whether history persistence should be skipped from context
func shouldSkipHistory(ctx context.Context) bool {
	val := ctx.Value(skipHistoryKey)
	if val == nil {
		return false // default: persist scans
	}
	skip, ok := val.(bool)
	return ok && skip
}

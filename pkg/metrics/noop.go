package metrics

import "context"

// NoopCollector discards everything.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordQuery does nothing
func (n *NoopCollector) RecordQuery(ctx context.Context, provider string, outcome string, durationMs int64) {
}

// RecordTokens does nothing
func (n *NoopCollector) RecordTokens(ctx context.Context, provider string, direction string, count int) {
}

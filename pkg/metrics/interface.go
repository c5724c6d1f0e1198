package metrics

import "context"

// Collector is the interface for query metrics.
// Implementations include the Prometheus-backed collector and the no-op
// collector used when no metrics file is requested.
type Collector interface {
	RecordQuery(ctx context.Context, provider string, outcome string, durationMs int64)
	RecordTokens(ctx context.Context, provider string, direction string, count int)
}

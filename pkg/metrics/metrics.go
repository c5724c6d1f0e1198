package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides Prometheus metrics for provider queries. A CLI
// process is too short-lived to be scraped, so the registry is written to a
// node_exporter textfile with WriteTextfile.
type MetricsCollector struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	tokensTotal   *prometheus.CounterVec
	registry      *prometheus.Registry
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiquery_queries_total",
			Help: "Total number of provider queries by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "multiquery_query_duration_seconds",
			Help:    "Duration of provider queries",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)

	tokensTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiquery_tokens_total",
			Help: "Tokens reported by providers by direction (input, output)",
		},
		[]string{"provider", "direction"},
	)

	registry.MustRegister(queriesTotal)
	registry.MustRegister(queryDuration)
	registry.MustRegister(tokensTotal)

	return &MetricsCollector{
		queriesTotal:  queriesTotal,
		queryDuration: queryDuration,
		tokensTotal:   tokensTotal,
		registry:      registry,
	}
}

// RecordQuery records a finished query and its duration
func (m *MetricsCollector) RecordQuery(ctx context.Context, provider string, outcome string, durationMs int64) {
	m.queriesTotal.WithLabelValues(provider, outcome).Inc()
	m.queryDuration.WithLabelValues(provider).Observe(float64(durationMs) / 1000.0)
}

// RecordTokens adds provider-reported token counts
func (m *MetricsCollector) RecordTokens(ctx context.Context, provider string, direction string, count int) {
	if count <= 0 {
		return
	}
	m.tokensTotal.WithLabelValues(provider, direction).Add(float64(count))
}

// WriteTextfile writes all collected metrics to path in the text exposition
// format. The write goes through a temp file and a rename.
func (m *MetricsCollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}

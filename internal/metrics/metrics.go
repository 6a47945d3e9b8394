// Package metrics provides Prometheus metrics for the scanbot service.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanbot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanbot_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Resolver Metrics
	ResolveRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanbot_resolve_requests_total",
			Help: "Total candidate resolution requests by game",
		},
		[]string{"game"},
	)

	ResolveCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scanbot_resolve_cache_hits_total",
			Help: "Candidate resolutions served from the LRU cache",
		},
	)

	ResolveProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanbot_resolve_provider_errors_total",
			Help: "Failed provider search calls (recovered as empty results)",
		},
		[]string{"provider"},
	)

	// Quote Metrics
	QuoteLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanbot_quote_lookups_total",
			Help: "Official pricing lookups by provider and result",
		},
		[]string{"provider", "result"}, // result: "hit", "miss", "error"
	)

	StubQuotesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scanbot_stub_quotes_total",
			Help: "Deterministic stub quotes generated",
		},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanbot_provider_latency_seconds",
			Help:    "Outbound provider call latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	// Pipeline Metrics
	ScansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scanbot_scans_created_total",
			Help: "Scan records persisted",
		},
	)

	SnapshotRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scanbot_snapshot_rows_total",
			Help: "Price snapshot rows persisted",
		},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanbot_recommendations_total",
			Help: "Recommendations produced by verdict",
		},
		[]string{"verdict"},
	)

	// Capture Worker Metrics
	CaptureFramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanbot_capture_frames_total",
			Help: "Frames processed by the capture worker",
		},
		[]string{"result"}, // "analyzed", "no_match", "error"
	)
)

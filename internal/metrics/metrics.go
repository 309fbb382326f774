// Package metrics exposes Prometheus collectors for the HTTP surface and
// the upstream FPL client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fplhub",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Inbound HTTP requests by route pattern and status code.",
	}, []string{"route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fplhub",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Inbound HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fplhub",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Upstream FPL API requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fplhub",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Upstream FPL API request latency by endpoint.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	bootstrapCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fplhub",
		Subsystem: "cache",
		Name:      "bootstrap_lookups_total",
		Help:      "Bootstrap cache lookups by result (hit, miss, stale).",
	}, []string{"result"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fplhub",
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "End-to-end manager analysis duration.",
		Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 40},
	})
)

// ObserveHTTP records one served request.
func ObserveHTTP(route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, status).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveUpstream records one upstream call. Outcome is "ok" or "error".
func ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// BootstrapLookup records a bootstrap cache lookup result.
func BootstrapLookup(result string) {
	bootstrapCacheHits.WithLabelValues(result).Inc()
}

// ObserveAnalysis records one completed manager analysis.
func ObserveAnalysis(elapsed time.Duration) {
	analysisDuration.Observe(elapsed.Seconds())
}

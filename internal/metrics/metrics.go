// Package metrics defines the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitbill_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// RequestDuration observes request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitbill_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ExtractionsTotal counts extraction runs.
	ExtractionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitbill_extractions_total",
		Help: "Total receipt text extractions attempted.",
	})

	// ExtractionFields counts per-field extraction outcomes. A field is
	// "resolved" when the extractor produced a non-zero value for it.
	ExtractionFields = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitbill_extraction_fields_total",
		Help: "Per-field extraction outcomes.",
	}, []string{"field", "outcome"})

	// SplitsTotal counts persisted bill splits.
	SplitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitbill_splits_total",
		Help: "Total bill splits persisted.",
	})
)

// ObserveExtraction records the outcome of one extraction run.
func ObserveExtraction(fields map[string]float64) {
	ExtractionsTotal.Inc()
	for name, v := range fields {
		outcome := "resolved"
		if v == 0 {
			outcome = "defaulted"
		}
		ExtractionFields.WithLabelValues(name, outcome).Inc()
	}
}

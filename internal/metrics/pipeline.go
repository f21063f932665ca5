package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spotlight"

// Model call metrics. Label "call" is "primary", "filler", "predict" or "heartbeat".
var (
	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_requests_total",
			Help:      "Total number of model service requests",
		},
		[]string{"domain", "call", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_request_duration_seconds",
			Help:      "Model service request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"domain", "call"},
	)

	ModelErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_errors_total",
			Help:      "Total model service errors",
		},
		[]string{"domain", "call", "error_type"},
	)
)

// Enrichment metrics. Label "result" is "hit", "miss" or "error".
var (
	EnrichmentLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_lookups_total",
			Help:      "Total catalog lookups by outcome",
		},
		[]string{"catalog", "result"},
	)

	EnrichmentLookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enrichment_lookup_duration_seconds",
			Help:      "Catalog lookup duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"catalog"},
	)
)

// Pipeline metrics.
var (
	FillerItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filler_items_total",
			Help:      "Total filler items appended to short recommendation lists",
		},
		[]string{"domain"},
	)

	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total recommendation pipeline runs by outcome",
		},
		[]string{"domain", "outcome"}, // "done" / "failed"
	)
)

var registerOnce sync.Once

// RegisterPipelineMetrics registers model, enrichment and pipeline metrics. Safe to call more than once.
func RegisterPipelineMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ModelRequestsTotal,
			ModelRequestDuration,
			ModelErrorsTotal,
			EnrichmentLookupsTotal,
			EnrichmentLookupDuration,
			FillerItemsTotal,
			PipelineRunsTotal,
		)
	})
}

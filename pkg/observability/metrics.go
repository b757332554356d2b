// Package observability provides metrics and tracing for the extraction
// pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics holds all Prometheus metrics for the extraction pipeline.
type PipelineMetrics struct {
	// Extraction metrics
	ExtractionAttemptsTotal *prometheus.CounterVec
	FallbacksTotal          prometheus.Counter
	ValidationFailuresTotal *prometheus.CounterVec
	InsightsExtractedTotal  *prometheus.CounterVec

	// Provider metrics
	ProviderLatencySeconds *prometheus.HistogramVec
	ProviderTokensTotal    *prometheus.CounterVec
	ProviderErrorsTotal    *prometheus.CounterVec

	// Routing metrics
	AlertsRoutedTotal *prometheus.CounterVec
}

// DefaultPipelineMetrics creates metrics on the default registerer.
func DefaultPipelineMetrics() *PipelineMetrics {
	return NewPipelineMetrics(prometheus.DefaultRegisterer)
}

// NewPipelineMetrics creates a new set of pipeline metrics.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		ExtractionAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsight_extraction_attempts_total",
				Help: "Extraction attempts by stage and outcome",
			},
			[]string{"stage", "status"},
		),
		FallbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "callsight_extraction_fallbacks_total",
				Help: "Times the fallback extraction stage was entered",
			},
		),
		ValidationFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsight_validation_failures_total",
				Help: "Schema validation failures by offending field",
			},
			[]string{"field"},
		),
		InsightsExtractedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsight_insights_extracted_total",
				Help: "Validated insights by type",
			},
			[]string{"insight_type"},
		),
		ProviderLatencySeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callsight_provider_latency_seconds",
				Help:    "Completion provider call latency",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"provider", "stage"},
		),
		ProviderTokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsight_provider_tokens_total",
				Help: "Token consumption by provider and direction",
			},
			[]string{"provider", "direction"},
		),
		ProviderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsight_provider_errors_total",
				Help: "Provider transport errors by classified code",
			},
			[]string{"provider", "code"},
		),
		AlertsRoutedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsight_alerts_routed_total",
				Help: "Routed alerts by destination and urgency",
			},
			[]string{"destination", "urgency"},
		),
	}
}

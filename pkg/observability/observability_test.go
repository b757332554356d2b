package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipelineMetrics(reg)
	require.NotNil(t, m)

	m.ExtractionAttemptsTotal.WithLabelValues("primary", "success").Inc()
	m.FallbacksTotal.Inc()
	m.ValidationFailuresTotal.WithLabelValues("confidence_score").Inc()
	m.InsightsExtractedTotal.WithLabelValues("bug_report").Add(3)
	m.ProviderLatencySeconds.WithLabelValues("gemini:flash", "primary").Observe(0.8)
	m.ProviderTokensTotal.WithLabelValues("gemini:flash", "input").Add(1200)
	m.ProviderErrorsTotal.WithLabelValues("gemini:flash", "rate_limit").Inc()
	m.AlertsRoutedTotal.WithLabelValues("engineering", "critical").Inc()

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.ExtractionAttemptsTotal.WithLabelValues("primary", "success")))
	assert.Equal(t, float64(3),
		testutil.ToFloat64(m.InsightsExtractedTotal.WithLabelValues("bug_report")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.AlertsRoutedTotal.WithLabelValues("engineering", "critical")))
}

func TestPipelineMetricsSeparateRegistries(t *testing.T) {
	// Two registries must not collide, so tests can build metrics freely.
	a := NewPipelineMetrics(prometheus.NewRegistry())
	b := NewPipelineMetrics(prometheus.NewRegistry())
	a.FallbacksTotal.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(a.FallbacksTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.FallbacksTotal))
}

func TestTracerSpans(t *testing.T) {
	tracer := NewTracer()
	ctx := context.Background()

	ctx, span := tracer.StartExtractSpan(ctx, "TXN-1", "Acme Financial")
	require.NotNil(t, span)

	ctx, stage := tracer.StartStageSpan(ctx, SpanStagePrimary, "primary")
	EndSpanOK(stage)

	_, prov := tracer.StartProviderSpan(ctx, "gemini:flash")
	EndSpanError(prov, errors.New("boom"))

	EndSpanOK(span)
}

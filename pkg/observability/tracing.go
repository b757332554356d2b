package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer for extraction operations.
const TracerName = "callsight"

// Span attribute keys
const (
	AttrTranscriptID = "transcript_id"
	AttrAccount      = "account"
	AttrStage        = "stage"
	AttrProvider     = "provider"
	AttrModel        = "model"
	AttrInsightCount = "insight_count"
	AttrInputTokens  = "input_tokens"
	AttrOutputTokens = "output_tokens"
	AttrErrorCode    = "error_code"
)

// Span names
const (
	SpanExtract       = "callsight.extract"
	SpanStagePrimary  = "callsight.stage.primary"
	SpanStageFallback = "callsight.stage.fallback"
	SpanProviderCall  = "callsight.provider_call"
	SpanParseValidate = "callsight.parse_validate"
	SpanRoute         = "callsight.route"
)

// Tracer provides tracing for extraction pipeline operations.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new pipeline tracer.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(TracerName),
	}
}

// StartExtractSpan starts the root span for one transcript's pipeline run.
func (t *Tracer) StartExtractSpan(ctx context.Context, transcriptID, account string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanExtract,
		trace.WithAttributes(
			attribute.String(AttrTranscriptID, transcriptID),
			attribute.String(AttrAccount, account),
		),
	)
}

// StartStageSpan starts a span for one extraction stage.
func (t *Tracer) StartStageSpan(ctx context.Context, name, stage string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String(AttrStage, stage)),
	)
}

// StartProviderSpan starts a span for a completion provider call.
func (t *Tracer) StartProviderSpan(ctx context.Context, provider string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanProviderCall,
		trace.WithAttributes(attribute.String(AttrProvider, provider)),
	)
}

// EndSpanError records err on the span and marks it failed before ending it.
func EndSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

// EndSpanOK marks the span successful and ends it.
func EndSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
	span.End()
}

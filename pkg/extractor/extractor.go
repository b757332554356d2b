// Package extractor drives the two-stage extraction cycle against a
// completion provider: primary call, parse and validate, and on content
// failure a single simplified fallback call before giving up.
package extractor

import (
	"context"
	"errors"
	"fmt"

	cserrors "github.com/otherjamesbrown/callsight-cli/pkg/errors"
	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
	"github.com/otherjamesbrown/callsight-cli/pkg/logging"
	"github.com/otherjamesbrown/callsight-cli/pkg/observability"
	"github.com/otherjamesbrown/callsight-cli/pkg/provider"
)

// Stage identifies a step in the extraction state machine.
type Stage string

const (
	StagePrimary  Stage = "primary"
	StageFallback Stage = "fallback"
)

// FallbackNotePrefix marks a result produced by the fallback stage.
const FallbackNotePrefix = "FALLBACK USED."

// Default token budgets per stage. The fallback contract is smaller, so its
// budget is too.
const (
	defaultPrimaryMaxTokens  = 4096
	defaultFallbackMaxTokens = 2048
)

// Engine orchestrates extraction for one transcript at a time. A run owns
// its data exclusively start to finish; engines hold only read-only
// configuration and are safe to reuse across transcripts.
type Engine struct {
	provider provider.CompletionProvider
	logger   logging.Logger
	metrics  *observability.PipelineMetrics
	tracer   *observability.Tracer

	primaryMaxTokens  int
	fallbackMaxTokens int
}

// Option configures the engine.
type Option func(*Engine)

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer attaches a pipeline tracer.
func WithTracer(t *observability.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithMaxTokens overrides the primary-stage token budget. The fallback
// budget stays at half, mirroring the default ratio.
func WithMaxTokens(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.primaryMaxTokens = n
			e.fallbackMaxTokens = n / 2
		}
	}
}

// NewEngine creates an extraction engine bound to a provider.
func NewEngine(p provider.CompletionProvider, logger logging.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	e := &Engine{
		provider:          p,
		logger:            logger,
		tracer:            observability.NewTracer(),
		primaryMaxTokens:  defaultPrimaryMaxTokens,
		fallbackMaxTokens: defaultFallbackMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the two-stage extraction state machine for one transcript.
//
// Outcomes:
//   - Stage 1 succeeds: insights and the model's processing note.
//   - Stage 1 fails on content (parse or schema): stage 2 retries with the
//     simplified contract. Its success is marked with FallbackNotePrefix;
//     any stage-2 failure, including transport, becomes a terminal empty
//     result with a diagnostic note and a nil error.
//   - Stage 1 fails on transport (rate limit, timeout, network): the
//     classified error is returned and the run aborts. Content failures
//     never escape this method.
func (e *Engine) Extract(ctx context.Context, transcript string, meta insight.CallMetadata) ([]insight.ExtractedInsight, string, error) {
	ctx, span := e.tracer.StartExtractSpan(ctx, meta.TranscriptID, meta.AccountName)

	log := e.logger.With(
		logging.F("transcript_id", meta.TranscriptID),
		logging.F("account", meta.AccountName),
	)

	insights, note, raw, err := e.runPrimary(ctx, log, transcript, meta)
	if err == nil {
		e.countInsights(insights)
		observability.EndSpanOK(span)
		return insights, note, err
	}

	if !cserrors.IsRecoverable(err) {
		// Transport-level failure: not retried via fallback, aborts the run.
		pe := cserrors.ClassifyError(err, string(StagePrimary))
		log.Error("provider call failed",
			logging.F("stage", string(StagePrimary)),
			logging.F("code", string(pe.Code)),
			logging.Err(err),
		)
		observability.EndSpanError(span, pe)
		return nil, "", pe
	}

	log.Warn("primary extraction failed, attempting fallback",
		logging.F("stage", string(StagePrimary)),
		logging.Err(err),
		logging.F("raw_excerpt", truncate(raw, 200)),
	)

	insights, note, err = e.runFallback(ctx, log, transcript, raw)
	if err != nil {
		// Terminal, non-throwing outcome: both attempts exhausted.
		log.Error("both extraction attempts failed",
			logging.F("stage", string(StageFallback)),
			logging.Err(err),
		)
		observability.EndSpanError(span, err)
		return []insight.ExtractedInsight{}, fmt.Sprintf("Both extraction attempts failed: %v", err), nil
	}

	log.Info("fallback extraction succeeded",
		logging.F("insight_count", len(insights)),
	)
	e.countInsights(insights)
	observability.EndSpanOK(span)
	if note != "" {
		note = FallbackNotePrefix + " " + note
	} else {
		note = FallbackNotePrefix
	}
	return insights, note, nil
}

// runPrimary executes stage 1. It returns the raw provider output alongside
// any error so the fallback prompt can embed the failed excerpt.
func (e *Engine) runPrimary(ctx context.Context, log logging.Logger, transcript string, meta insight.CallMetadata) ([]insight.ExtractedInsight, string, string, error) {
	ctx, span := e.tracer.StartStageSpan(ctx, observability.SpanStagePrimary, string(StagePrimary))

	prompt, err := BuildExtractionPrompt(transcript, meta.CSMName, meta.AccountName, meta.CallDate)
	if err != nil {
		observability.EndSpanError(span, err)
		return nil, "", "", err
	}

	log.Info("calling completion provider",
		logging.F("stage", string(StagePrimary)),
		logging.F("provider", e.provider.Name()),
		logging.F("prompt_version", PromptVersion),
	)

	raw, err := e.complete(ctx, StagePrimary, provider.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: SystemPrompt,
		MaxTokens:    e.primaryMaxTokens,
	})
	if err != nil {
		observability.EndSpanError(span, err)
		return nil, "", "", err
	}

	insights, note, err := e.parseAndValidate(ctx, StagePrimary, raw)
	if err != nil {
		observability.EndSpanError(span, err)
		return nil, "", raw, err
	}

	log.Info("primary extraction succeeded",
		logging.F("insight_count", len(insights)),
	)
	observability.EndSpanOK(span)
	return insights, note, raw, nil
}

// runFallback executes stage 2 with the reduced-schema contract.
func (e *Engine) runFallback(ctx context.Context, log logging.Logger, transcript, failedOutput string) ([]insight.ExtractedInsight, string, error) {
	ctx, span := e.tracer.StartStageSpan(ctx, observability.SpanStageFallback, string(StageFallback))
	if e.metrics != nil {
		e.metrics.FallbacksTotal.Inc()
	}

	prompt, err := BuildFallbackPrompt(transcript, failedOutput)
	if err != nil {
		observability.EndSpanError(span, err)
		return nil, "", err
	}

	log.Info("calling completion provider",
		logging.F("stage", string(StageFallback)),
		logging.F("provider", e.provider.Name()),
	)

	raw, err := e.complete(ctx, StageFallback, provider.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: SystemPrompt,
		MaxTokens:    e.fallbackMaxTokens,
	})
	if err != nil {
		observability.EndSpanError(span, err)
		return nil, "", err
	}

	insights, note, err := e.parseAndValidate(ctx, StageFallback, raw)
	if err != nil {
		observability.EndSpanError(span, err)
		return nil, "", err
	}

	observability.EndSpanOK(span)
	return insights, note, nil
}

// complete calls the provider and records latency, token, and error metrics.
func (e *Engine) complete(ctx context.Context, stage Stage, req provider.CompletionRequest) (string, error) {
	ctx, span := e.tracer.StartProviderSpan(ctx, e.provider.Name())

	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		if e.metrics != nil {
			pe := cserrors.ClassifyError(err, string(stage))
			e.metrics.ProviderErrorsTotal.WithLabelValues(e.provider.Name(), string(pe.Code)).Inc()
		}
		observability.EndSpanError(span, err)
		return "", err
	}

	if e.metrics != nil {
		e.metrics.ProviderLatencySeconds.WithLabelValues(e.provider.Name(), string(stage)).
			Observe(float64(resp.LatencyMs) / 1000.0)
		if resp.TokensUsed.Total > 0 {
			e.metrics.ProviderTokensTotal.WithLabelValues(e.provider.Name(), "input").
				Add(float64(resp.TokensUsed.Prompt))
			e.metrics.ProviderTokensTotal.WithLabelValues(e.provider.Name(), "output").
				Add(float64(resp.TokensUsed.Completion))
		}
	}
	observability.EndSpanOK(span)
	return resp.Content, nil
}

// parseAndValidate wraps insight.ParseAndValidate with metrics and tracing.
func (e *Engine) parseAndValidate(ctx context.Context, stage Stage, raw string) ([]insight.ExtractedInsight, string, error) {
	_, span := e.tracer.StartStageSpan(ctx, observability.SpanParseValidate, string(stage))

	insights, note, err := insight.ParseAndValidate(raw)
	if e.metrics != nil {
		status := "success"
		if err != nil {
			status = "failure"
			var ve *insight.ValidationError
			if errors.As(err, &ve) {
				e.metrics.ValidationFailuresTotal.WithLabelValues(ve.Field).Inc()
			}
		}
		e.metrics.ExtractionAttemptsTotal.WithLabelValues(string(stage), status).Inc()
	}
	if err != nil {
		observability.EndSpanError(span, err)
		return nil, "", err
	}
	observability.EndSpanOK(span)
	return insights, note, nil
}

func (e *Engine) countInsights(insights []insight.ExtractedInsight) {
	if e.metrics == nil {
		return
	}
	for _, ins := range insights {
		e.metrics.InsightsExtractedTotal.WithLabelValues(string(ins.InsightType)).Inc()
	}
}

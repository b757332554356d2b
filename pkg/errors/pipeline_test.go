package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"deadline exceeded", context.DeadlineExceeded, ErrTimeout},
		{"cancelled", context.Canceled, ErrContextCancelled},
		{"wrapped deadline", fmt.Errorf("calling model: %w", context.DeadlineExceeded), ErrTimeout},
		{"validation sentinel", fmt.Errorf("bad field: %w", ErrValidation), ErrInvalidSchema},
		{"rate limit text", errors.New("429 Too Many Requests"), ErrRateLimit},
		{"quota text", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), ErrRateLimit},
		{"unavailable", errors.New("connection refused"), ErrModelUnavailable},
		{"503", errors.New("upstream returned 503"), ErrModelUnavailable},
		{"empty content", errors.New("model returned empty response"), ErrEmptyContent},
		{"unknown", errors.New("something odd"), ErrProcessingError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := ClassifyError(tt.err, "primary")
			require.NotNil(t, pe)
			assert.Equal(t, tt.want, pe.Code)
			assert.Equal(t, "primary", pe.Stage)
			assert.ErrorIs(t, pe, tt.err)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ClassifyError(nil, "primary"))
	})

	t.Run("already classified for the same stage passes through", func(t *testing.T) {
		orig := &PipelineError{Code: ErrParseFailure, Stage: "primary", Message: "bad json"}
		assert.Same(t, orig, ClassifyError(orig, "primary"))
	})
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(&PipelineError{Code: ErrParseFailure}))
	assert.True(t, IsRecoverable(&PipelineError{Code: ErrInvalidSchema}))
	assert.True(t, IsRecoverable(fmt.Errorf("field: %w", ErrValidation)))

	assert.False(t, IsRecoverable(&PipelineError{Code: ErrTimeout}))
	assert.False(t, IsRecoverable(&PipelineError{Code: ErrRateLimit}))
	assert.False(t, IsRecoverable(context.DeadlineExceeded))
	assert.False(t, IsRecoverable(errors.New("plain")))
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(&PipelineError{Code: ErrTimeout}))
	assert.False(t, IsTimeout(&PipelineError{Code: ErrRateLimit}))
	assert.False(t, IsTimeout(errors.New("plain")))
}

func TestPipelineErrorFormat(t *testing.T) {
	withStage := &PipelineError{Code: ErrRateLimit, Stage: "primary", Message: "slow down"}
	assert.Equal(t, "rate_limit: primary: slow down", withStage.Error())

	noStage := &PipelineError{Code: ErrParseFailure, Message: "bad json"}
	assert.Equal(t, "parse_failure: bad json", noStage.Error())

	cause := errors.New("root")
	wrapped := &PipelineError{Code: ErrProcessingError, Message: "x", Cause: cause}
	assert.ErrorIs(t, wrapped, cause)
}

func TestErrorCodeRegistry(t *testing.T) {
	// Every classification code the pipeline can emit has registry metadata.
	codes := []ErrorCode{
		ErrTimeout, ErrRateLimit, ErrModelUnavailable, ErrContextCancelled,
		ErrParseFailure, ErrInvalidSchema, ErrEmptyContent,
		ErrExtractionExhausted, ErrProcessingError,
	}
	for _, code := range codes {
		info, ok := ErrorCodeRegistry[code]
		require.True(t, ok, "no registry entry for %s", code)
		assert.NotEmpty(t, info.Description, "%s", code)
		assert.NotEmpty(t, info.SuggestedAction, "%s", code)
	}

	assert.True(t, IsErrorRetryable(&PipelineError{Code: ErrRateLimit}))
	assert.False(t, IsErrorRetryable(&PipelineError{Code: ErrInvalidSchema}))
	assert.False(t, IsErrorRetryable(errors.New("plain")))
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a classified pipeline error.
type ErrorCode string

const (
	ErrTimeout             ErrorCode = "timeout"
	ErrRateLimit           ErrorCode = "rate_limit"
	ErrModelUnavailable    ErrorCode = "model_unavailable"
	ErrContextCancelled    ErrorCode = "context_cancelled"
	ErrParseFailure        ErrorCode = "parse_failure"
	ErrInvalidSchema       ErrorCode = "invalid_schema"
	ErrEmptyContent        ErrorCode = "empty_content"
	ErrExtractionExhausted ErrorCode = "extraction_exhausted"
	ErrProcessingError     ErrorCode = "processing_error"
)

// PipelineError is a structured error for extraction pipeline failures.
type PipelineError struct {
	Code    ErrorCode
	Stage   string
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// ClassifyError inspects an error and returns a *PipelineError with the
// appropriate code. Errors that don't match any known pattern get
// ErrProcessingError.
func ClassifyError(err error, stage string) *PipelineError {
	if err == nil {
		return nil
	}

	var pe *PipelineError
	if errors.As(err, &pe) && pe.Stage == stage {
		return pe
	}

	out := &PipelineError{
		Stage: stage,
		Cause: err,
	}

	if errors.Is(err, context.DeadlineExceeded) {
		out.Code = ErrTimeout
		out.Message = "operation timed out"
		return out
	}

	if errors.Is(err, context.Canceled) {
		out.Code = ErrContextCancelled
		out.Message = "operation cancelled"
		return out
	}

	if errors.Is(err, ErrValidation) {
		out.Code = ErrInvalidSchema
		out.Message = err.Error()
		return out
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	if strings.Contains(lower, "rate limit") || strings.Contains(lower, "429") ||
		strings.Contains(lower, "too many requests") || strings.Contains(lower, "quota") ||
		strings.Contains(lower, "resource_exhausted") {
		out.Code = ErrRateLimit
		out.Message = msg
		return out
	}

	if strings.Contains(lower, "connection refused") || strings.Contains(lower, "unavailable") ||
		strings.Contains(lower, "503") || strings.Contains(lower, "no such host") {
		out.Code = ErrModelUnavailable
		out.Message = msg
		return out
	}

	if strings.Contains(lower, "empty content") || strings.Contains(lower, "empty response") {
		out.Code = ErrEmptyContent
		out.Message = msg
		return out
	}

	out.Code = ErrProcessingError
	out.Message = msg
	return out
}

// IsTimeout returns true if the error carries the timeout code.
func IsTimeout(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code == ErrTimeout
	}
	return false
}

// IsRecoverable reports whether err is a local content failure (parse or
// schema) that the orchestrator may recover from via fallback extraction,
// as opposed to a transport-level failure that aborts the run.
func IsRecoverable(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code == ErrParseFailure || pe.Code == ErrInvalidSchema
	}
	return errors.Is(err, ErrValidation)
}

// IsErrorRetryable returns true if the error is likely transient and worth
// retrying at the transport boundary.
func IsErrorRetryable(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		if info, ok := ErrorCodeRegistry[pe.Code]; ok {
			return info.Retryable
		}
	}
	return false
}

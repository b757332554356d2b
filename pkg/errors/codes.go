package errors

// ErrorCodeInfo contains metadata about an error code.
type ErrorCodeInfo struct {
	Code            ErrorCode
	Retryable       bool
	Description     string
	SuggestedAction string
}

// ErrorCodeRegistry maps error codes to their metadata.
var ErrorCodeRegistry = map[ErrorCode]ErrorCodeInfo{
	ErrTimeout: {
		Code:            ErrTimeout,
		Retryable:       true,
		Description:     "Provider call exceeded time limit",
		SuggestedAction: "Increase the timeout in ~/.callsight/config.yaml or retry",
	},
	ErrRateLimit: {
		Code:            ErrRateLimit,
		Retryable:       true,
		Description:     "Provider API rate limit exceeded",
		SuggestedAction: "Wait and retry, or check quota limits with the provider",
	},
	ErrModelUnavailable: {
		Code:            ErrModelUnavailable,
		Retryable:       true,
		Description:     "Model or provider service unavailable",
		SuggestedAction: "Check network connectivity and provider status",
	},
	ErrContextCancelled: {
		Code:            ErrContextCancelled,
		Retryable:       false,
		Description:     "Operation cancelled by user or system",
		SuggestedAction: "Check if cancellation was intentional",
	},
	ErrParseFailure: {
		Code:            ErrParseFailure,
		Retryable:       false,
		Description:     "Model output is not parseable JSON",
		SuggestedAction: "Recovered automatically via fallback extraction; inspect logs if persistent",
	},
	ErrInvalidSchema: {
		Code:            ErrInvalidSchema,
		Retryable:       false,
		Description:     "Model output parsed but violates the insight schema",
		SuggestedAction: "Recovered automatically via fallback extraction; inspect logs if persistent",
	},
	ErrEmptyContent: {
		Code:            ErrEmptyContent,
		Retryable:       false,
		Description:     "Transcript or model response is empty",
		SuggestedAction: "Verify the transcript file has a body below the header block",
	},
	ErrExtractionExhausted: {
		Code:            ErrExtractionExhausted,
		Retryable:       false,
		Description:     "Both primary and fallback extraction attempts failed",
		SuggestedAction: "Run with --debug and inspect the logged raw output excerpts",
	},
	ErrProcessingError: {
		Code:            ErrProcessingError,
		Retryable:       false,
		Description:     "Unclassified processing error",
		SuggestedAction: "Run with --debug for full error detail",
	},
}

// IsRetryable returns true if the given error code represents a transient,
// retryable error.
func IsRetryable(code ErrorCode) bool {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Retryable
	}
	return false
}

// GetSuggestedAction returns the suggested action for the given error code.
func GetSuggestedAction(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.SuggestedAction
	}
	return "Run with --debug for full error detail"
}

// GetDescription returns the human-readable description for the given code.
func GetDescription(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Description
	}
	return "Unknown error"
}

// Package provider abstracts the LLM completion service behind a small
// interface. The extraction engine treats the provider's wire format as
// opaque: prompt text in, free text out, or a classified transport error.
package provider

import (
	"context"
)

// CompletionProvider defines the interface for completion backends.
type CompletionProvider interface {
	// Name returns the provider identifier (e.g., "gemini-2.0-flash").
	Name() string

	// Complete sends a completion request and returns the raw response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Close releases provider resources.
	Close() error
}

// CompletionRequest represents a request to the completion backend.
type CompletionRequest struct {
	// Prompt is the full user prompt text.
	Prompt string `json:"prompt"`

	// SystemPrompt is an optional system-level instruction.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens limits response length (0 = provider default).
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse represents a response from the completion backend.
type CompletionResponse struct {
	// Content is the raw text response.
	Content string `json:"content"`

	// Model is the actual model used.
	Model string `json:"model"`

	// LatencyMs is the response time in milliseconds.
	LatencyMs int `json:"latency_ms"`

	// TokensUsed tracks token consumption when the backend reports it.
	TokensUsed TokenUsage `json:"tokens_used"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
	Total      int `json:"total"`
}

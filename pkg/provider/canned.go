package provider

import (
	"context"
)

// CannedProvider returns precomputed responses without any network call.
// It backs the --mock CLI flag and the extraction tests: the first call
// returns Responses[0], the second Responses[1], and so on. When the
// responses are exhausted, Err (or the last response) is returned.
type CannedProvider struct {
	Responses []string
	Err       error

	calls int
}

// NewCannedProvider creates a provider that replays the given responses
// in order.
func NewCannedProvider(responses ...string) *CannedProvider {
	return &CannedProvider{Responses: responses}
}

// Name returns the provider identifier.
func (p *CannedProvider) Name() string {
	return "canned"
}

// Calls reports how many completions have been requested.
func (p *CannedProvider) Calls() int {
	return p.calls
}

// Complete returns the next canned response.
func (p *CannedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	p.calls++
	if p.calls <= len(p.Responses) {
		return &CompletionResponse{
			Content: p.Responses[p.calls-1],
			Model:   "canned",
		}, nil
	}
	if p.Err != nil {
		return nil, p.Err
	}
	if len(p.Responses) > 0 {
		return &CompletionResponse{
			Content: p.Responses[len(p.Responses)-1],
			Model:   "canned",
		}, nil
	}
	return &CompletionResponse{Model: "canned"}, nil
}

// Close is a no-op.
func (p *CannedProvider) Close() error {
	return nil
}

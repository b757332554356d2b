package provider

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	cserrors "github.com/otherjamesbrown/callsight-cli/pkg/errors"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// GeminiProvider implements CompletionProvider using the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider backed by the Gemini API.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return fmt.Sprintf("gemini:%s", p.model)
}

// Complete sends a completion request and returns the raw response text.
// Transport errors are classified into PipelineError codes so the caller
// can distinguish rate limits and timeouts from content failures.
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	config := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, cserrors.ClassifyError(err, "provider_call")
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, &cserrors.PipelineError{
			Code:    cserrors.ErrEmptyContent,
			Stage:   "provider_call",
			Message: "empty response from model",
		}
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	resp := &CompletionResponse{
		Content:   text,
		Model:     p.model,
		LatencyMs: int(time.Since(start).Milliseconds()),
	}
	if result.UsageMetadata != nil {
		resp.TokensUsed = TokenUsage{
			Prompt:     int(result.UsageMetadata.PromptTokenCount),
			Completion: int(result.UsageMetadata.CandidatesTokenCount),
			Total:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

// Close releases provider resources. The genai client holds no connection
// state that requires explicit shutdown.
func (p *GeminiProvider) Close() error {
	return nil
}

package llm

import (
	"context"
)

// GenerationRequest is the prompt pair sent for one generation.
type GenerationRequest struct {
	SystemPrompt string
	UserMessage  string
}

// Client abstracts the remote generative-text service.
// Each Generate call issues exactly one outbound request and either returns
// the complete text or a *GenerationError.
type Client interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

package llm

import (
	"context"
	"fmt"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/config"
)

// NewClient builds the generation backend selected by cfg.GenerationProvider.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.GenerationProvider {
	case config.ProviderMessages, "":
		if cfg.GenerationAPIKey == "" {
			return nil, fmt.Errorf("messages provider requires an API key")
		}
		return NewMessagesClient(MessagesConfig{
			BaseURL:    cfg.GenerationBaseURL,
			APIKey:     cfg.GenerationAPIKey,
			APIVersion: cfg.GenerationAPIVersion,
			Model:      cfg.GenerationModel,
			MaxTokens:  cfg.GenerationMaxTokens,
			Timeout:    cfg.GenerationTimeout,
		}), nil

	case config.ProviderGemini:
		maxTokens := cfg.GenerationMaxTokens
		chatModel, err := NewMultiKeyChatModel(ctx, cfg.GeminiAPIKeys, cfg.GeminiModel, &maxTokens)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini chat model: %w", err)
		}
		return NewChatModelClient(chatModel), nil

	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.GenerationProvider)
	}
}

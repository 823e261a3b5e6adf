package llm

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

// MultiKeyChatModel wraps one Gemini chat model per API key and rotates
// between them round-robin so requests spread across key quotas.
type MultiKeyChatModel struct {
	models   []model.BaseChatModel
	keyIndex uint64 // atomic counter for round-robin selection
}

// NewMultiKeyChatModel creates a chat model that rotates between multiple API keys
func NewMultiKeyChatModel(ctx context.Context, apiKeys []string, modelName string, maxTokens *int) (*MultiKeyChatModel, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}

	models := make([]model.BaseChatModel, len(apiKeys))

	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: key,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client for key %d: %w", i+1, err)
		}

		chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client:    client,
			Model:     modelName,
			MaxTokens: maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model for key %d: %w", i+1, err)
		}

		models[i] = chatModel
	}

	utils.Zlog.Info("Created multi-key chat model with round-robin rotation",
		zap.Int("key_count", len(apiKeys)),
		zap.String("model", modelName))

	return newMultiKeyChatModel(models), nil
}

func newMultiKeyChatModel(models []model.BaseChatModel) *MultiKeyChatModel {
	return &MultiKeyChatModel{models: models}
}

// getNextModel is safe for concurrent use.
func (m *MultiKeyChatModel) getNextModel() model.BaseChatModel {
	if len(m.models) == 1 {
		return m.models[0]
	}
	idx := atomic.AddUint64(&m.keyIndex, 1)
	return m.models[idx%uint64(len(m.models))]
}

// Generate implements model.BaseChatModel
func (m *MultiKeyChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return m.getNextModel().Generate(ctx, input, opts...)
}

// Stream implements model.BaseChatModel
func (m *MultiKeyChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return m.getNextModel().Stream(ctx, input, opts...)
}

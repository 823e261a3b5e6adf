package llm

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModelClient adapts an eino chat model to Client.
type ChatModelClient struct {
	chatModel model.BaseChatModel
}

func NewChatModelClient(chatModel model.BaseChatModel) *ChatModelClient {
	return &ChatModelClient{chatModel: chatModel}
}

func (c *ChatModelClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(req.SystemPrompt),
		schema.UserMessage(req.UserMessage),
	}

	msg, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", classifyChatModelError(ctx, err)
	}
	if msg == nil {
		return "", malformedError("chat model returned no message", nil)
	}

	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return "", malformedError("chat model returned empty content", nil)
	}
	return msg.Content, nil
}

// classifyChatModelError maps SDK errors onto GenerationError kinds. The SDKs
// do not expose the HTTP status uniformly, so service errors carry status 0.
func classifyChatModelError(ctx context.Context, err error) *GenerationError {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return transportError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return transportError(err)
	}
	genErr := serviceError(0, err.Error())
	genErr.Err = err
	return genErr
}

package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	name  string
	reply *schema.Message
	err   error
	calls int
	input []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.calls++
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming is not supported")
}

func TestChatModelClient_Generate(t *testing.T) {
	fake := &fakeChatModel{reply: schema.AssistantMessage("맛있게 드세요!", nil)}
	client := NewChatModelClient(fake)

	text, err := client.Generate(context.Background(), GenerationRequest{
		SystemPrompt: "system prompt",
		UserMessage:  "user message",
	})

	require.NoError(t, err)
	assert.Equal(t, "맛있게 드세요!", text)
	require.Len(t, fake.input, 2)
	assert.Equal(t, schema.System, fake.input[0].Role)
	assert.Equal(t, "system prompt", fake.input[0].Content)
	assert.Equal(t, schema.User, fake.input[1].Role)
	assert.Equal(t, "user message", fake.input[1].Content)
}

func TestChatModelClient_ErrorKinds(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		fake     *fakeChatModel
		wantKind ErrorKind
	}{
		{
			name:     "sdk error maps to service",
			ctx:      context.Background(),
			fake:     &fakeChatModel{err: errors.New("quota exceeded")},
			wantKind: KindService,
		},
		{
			name:     "cancelled context maps to transport",
			ctx:      cancelled,
			fake:     &fakeChatModel{err: context.Canceled},
			wantKind: KindTransport,
		},
		{
			name:     "nil message maps to malformed",
			ctx:      context.Background(),
			fake:     &fakeChatModel{},
			wantKind: KindMalformed,
		},
		{
			name:     "blank content maps to malformed",
			ctx:      context.Background(),
			fake:     &fakeChatModel{reply: schema.AssistantMessage("  ", nil)},
			wantKind: KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChatModelClient(tt.fake).Generate(tt.ctx, GenerationRequest{SystemPrompt: "s", UserMessage: "u"})
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestMultiKeyChatModel_RoundRobin(t *testing.T) {
	a := &fakeChatModel{name: "a", reply: schema.AssistantMessage("a", nil)}
	b := &fakeChatModel{name: "b", reply: schema.AssistantMessage("b", nil)}
	m := newMultiKeyChatModel([]model.BaseChatModel{a, b})

	for i := 0; i < 4; i++ {
		_, err := m.Generate(context.Background(), nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, a.calls)
	assert.Equal(t, 2, b.calls)
}

func TestNewMultiKeyChatModel_RequiresKeys(t *testing.T) {
	_, err := NewMultiKeyChatModel(context.Background(), nil, "gemini-2.0-flash-lite", nil)
	assert.Error(t, err)
}

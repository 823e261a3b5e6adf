package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMessagesServer mimics the messages endpoint. It records the decoded
// request body and answers with the given status and raw body.
func fakeMessagesServer(t *testing.T, status int, body string, captured *messagesRequest, headers *http.Header, counter *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if counter != nil {
			counter.Add(1)
		}
		if r.URL.Path != "/v1/messages" || r.Method != http.MethodPost {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if headers != nil {
			*headers = r.Header.Clone()
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newTestMessagesClient(baseURL string) *MessagesClient {
	return NewMessagesClient(MessagesConfig{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		Model:     "test-model",
		MaxTokens: 256,
		Timeout:   5 * time.Second,
	})
}

func TestMessagesClient_GenerateSuccess(t *testing.T) {
	var captured messagesRequest
	var headers http.Header
	var counter atomic.Int64
	srv := fakeMessagesServer(t, http.StatusOK,
		`{"content":[{"type":"text","text":"정성껏 구워드린 빵 마음에 드셨다니 감사합니다!"},{"type":"text","text":"ignored"}]}`,
		&captured, &headers, &counter)
	defer srv.Close()

	client := newTestMessagesClient(srv.URL + "/")
	text, err := client.Generate(context.Background(), GenerationRequest{
		SystemPrompt: "system",
		UserMessage:  "user",
	})

	require.NoError(t, err)
	assert.Equal(t, "정성껏 구워드린 빵 마음에 드셨다니 감사합니다!", text)
	assert.Equal(t, int64(1), counter.Load(), "exactly one outbound call")

	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, 256, captured.MaxTokens)
	assert.Equal(t, "system", captured.System)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[0].Content)

	assert.Equal(t, "test-key", headers.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", headers.Get("anthropic-version"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
}

func TestMessagesClient_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "unauthorized with structured error",
			status:     http.StatusUnauthorized,
			body:       `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`,
			wantDetail: "authentication_error: invalid x-api-key",
		},
		{
			name:       "internal error with plain body",
			status:     http.StatusInternalServerError,
			body:       `upstream exploded`,
			wantDetail: "upstream exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counter atomic.Int64
			srv := fakeMessagesServer(t, tt.status, tt.body, nil, nil, &counter)
			defer srv.Close()

			_, err := newTestMessagesClient(srv.URL).Generate(context.Background(), GenerationRequest{
				SystemPrompt: "s",
				UserMessage:  "u",
			})

			require.Error(t, err)
			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, KindService, genErr.Kind)
			assert.Equal(t, tt.status, genErr.StatusCode)
			assert.Equal(t, tt.wantDetail, genErr.Detail)
			assert.Contains(t, err.Error(), "status")
			assert.Equal(t, int64(1), counter.Load(), "no retry on failure")
		})
	}
}

func TestMessagesClient_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "no content", body: `{"content":[]}`},
		{name: "missing content field", body: `{"id":"msg_1"}`},
		{name: "non-text first segment", body: `{"content":[{"type":"tool_use","text":""}]}`},
		{name: "empty text", body: `{"content":[{"type":"text","text":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeMessagesServer(t, http.StatusOK, tt.body, nil, nil, nil)
			defer srv.Close()

			_, err := newTestMessagesClient(srv.URL).Generate(context.Background(), GenerationRequest{
				SystemPrompt: "s",
				UserMessage:  "u",
			})

			require.Error(t, err)
			assert.Equal(t, KindMalformed, KindOf(err))
			assert.Contains(t, err.Error(), "malformed generation response")
		})
	}
}

func TestMessagesClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestMessagesClient(url).Generate(context.Background(), GenerationRequest{
		SystemPrompt: "s",
		UserMessage:  "u",
	})

	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.Contains(t, err.Error(), "generation request failed")
}

func TestMessagesClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewMessagesClient(MessagesConfig{
		BaseURL: srv.URL,
		APIKey:  "k",
		Model:   "m",
		Timeout: 50 * time.Millisecond,
	})

	_, err := client.Generate(context.Background(), GenerationRequest{SystemPrompt: "s", UserMessage: "u"})

	require.Error(t, err)
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindTransport, genErr.Kind)
	assert.True(t, genErr.Timeout())
}

func TestNewMessagesClient_Defaults(t *testing.T) {
	client := NewMessagesClient(MessagesConfig{BaseURL: "https://example.com/", APIKey: "k", Model: "m"})

	assert.Equal(t, "https://example.com", client.baseURL)
	assert.Equal(t, "2023-06-01", client.apiVersion)
	assert.Equal(t, 1000, client.maxTokens)
	assert.Equal(t, 60*time.Second, client.client.Timeout)
	assert.Equal(t, "m", client.Model())
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

const maxErrorDetail = 300

// MessagesConfig configures a MessagesClient.
type MessagesConfig struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
}

// MessagesClient calls a messages-style generation endpoint over HTTPS JSON.
type MessagesClient struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	apiVersion string
	model      string
	maxTokens  int
}

type messagesRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	System    string           `json:"system"`
	Messages  []messageContent `json:"messages"`
}

type messageContent struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type messagesErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewMessagesClient(cfg MessagesConfig) *MessagesClient {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-06-01"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &MessagesClient{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
	}
}

// Generate sends one request and returns the first text segment of the reply.
func (c *MessagesClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	httpReq, err := c.buildHTTPRequest(ctx, req)
	if err != nil {
		return "", transportError(fmt.Errorf("failed to build request: %w", err))
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return "", transportError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", transportError(fmt.Errorf("failed to read response: %w", err))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		utils.Zlog.Debug("generation service rejected request",
			zap.Int("status", httpResp.StatusCode),
			zap.String("model", c.model))
		return "", serviceError(httpResp.StatusCode, errorDetail(body))
	}

	return parseMessagesResponse(body)
}

func (c *MessagesClient) buildHTTPRequest(ctx context.Context, req GenerationRequest) (*http.Request, error) {
	payload := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    req.SystemPrompt,
		Messages: []messageContent{
			{Role: "user", Content: req.UserMessage},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", c.apiVersion)

	return httpReq, nil
}

func (c *MessagesClient) Model() string {
	return c.model
}

func parseMessagesResponse(body []byte) (string, error) {
	var resp messagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", malformedError("response is not valid JSON", err)
	}
	if len(resp.Content) == 0 {
		return "", malformedError("response has no content segments", nil)
	}

	first := resp.Content[0]
	if first.Type != "" && first.Type != "text" {
		return "", malformedError(fmt.Sprintf("first content segment has type %q", first.Type), nil)
	}
	if first.Text == "" {
		return "", malformedError("first content segment has no text", nil)
	}
	return first.Text, nil
}

// errorDetail prefers the structured error message and falls back to the raw body.
func errorDetail(body []byte) string {
	var errBody messagesErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error.Message != "" {
		if errBody.Error.Type != "" {
			return errBody.Error.Type + ": " + errBody.Error.Message
		}
		return errBody.Error.Message
	}

	detail := strings.TrimSpace(string(body))
	if len(detail) > maxErrorDetail {
		detail = detail[:maxErrorDetail] + "..."
	}
	return detail
}

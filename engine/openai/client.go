// Package openai implements the reasoning-engine boundary against the
// OpenAI chat-completions API with function calling.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gowrivallaban/account-open-agenticAI/core/protocol"
	"github.com/gowrivallaban/account-open-agenticAI/engine"
)

// Client calls the chat-completions endpoint over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

var _ engine.Engine = (*Client)(nil)

// NewClient creates a Client from configuration. The API key is required;
// everything else falls back to defaults.
func NewClient(cfg Config) (*Client, error) {
	merged := DefaultConfig()
	merged.Merge(&cfg)

	if strings.TrimSpace(merged.APIKey) == "" {
		return nil, errors.New("openai: API key is required")
	}
	merged.BaseURL = strings.TrimRight(merged.BaseURL, "/")

	return &Client{
		cfg:        merged,
		httpClient: &http.Client{},
	}, nil
}

type toolEnvelope struct {
	Type     string        `json:"type"`
	Function protocol.Tool `json:"function"`
}

type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []protocol.Message `json:"messages"`
	Tools       []toolEnvelope     `json:"tools,omitempty"`
	ToolChoice  string             `json:"tool_choice,omitempty"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens"`
}

// Send performs one blocking round trip. Each attempt runs under the
// configured per-call timeout; a timed-out attempt is retried exactly once
// before the failure surfaces. No other failure is retried.
func (c *Client) Send(ctx context.Context, messages []protocol.Message, catalog []protocol.Tool) (*engine.Response, error) {
	payload, err := c.buildPayload(messages, catalog)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, payload)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		resp, err = c.send(ctx, payload)
	}
	return resp, err
}

func (c *Client) buildPayload(messages []protocol.Message, catalog []protocol.Tool) ([]byte, error) {
	req := chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	if len(catalog) > 0 {
		req.ToolChoice = "auto"
		for _, tool := range catalog {
			req.Tools = append(req.Tools, toolEnvelope{Type: "function", Function: tool})
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}
	return payload, nil
}

func (c *Client) send(ctx context.Context, payload []byte) (*engine.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := c.cfg.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content   string              `json:"content"`
				ToolCalls []protocol.ToolCall `json:"tool_calls"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, errors.New("openai: response has no choices")
	}

	msg := decoded.Choices[0].Message
	return &engine.Response{
		Content:   msg.Content,
		ToolCalls: msg.ToolCalls,
	}, nil
}

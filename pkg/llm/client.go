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
)

// Client is the interface for chat-completion providers. The abstraction
// keeps the narrative generator testable without a live endpoint.
type Client interface {
	// Chat sends a system prompt and a user message and returns the text
	// response.
	Chat(ctx context.Context, systemPrompt, userQuery string) (string, error)
}

// OpenAIClient implements Client for OpenAI-compatible APIs.
type OpenAIClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient initializes a new LLM client.
func NewClient(cfg Config) *OpenAIClient {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &OpenAIClient{
		cfg: cfg,
		httpClient: &http.Client{
			// Generation can be slow, especially on local models.
			Timeout: 120 * time.Second,
		},
	}
}

// Chat performs a blocking completion request.
func (c *OpenAIClient) Chat(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	messages := []Message{}
	if systemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, Message{Role: "user", Content: userQuery})

	reqBody := ChatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		Stream:      false,
	}
	if c.cfg.MaxTokens > 0 {
		reqBody.MaxTokens = c.cfg.MaxTokens
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm connection failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("provider error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from llm")
	}
	return chatResp.Choices[0].Message.Content, nil
}

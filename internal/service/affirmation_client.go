package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// affirmationClient 封装对 OpenAI Chat Completions 接口的调用
type affirmationClient struct {
	http    httpDoer
	apiKey  string
	baseURL string
	model   string
}

func newAffirmationClient(apiKey, model string) *affirmationClient {
	return &affirmationClient{
		http:    &http.Client{Timeout: 20 * time.Second},
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: "https://api.openai.com/v1",
		model:   strings.TrimSpace(model),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (c *affirmationClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 20 * time.Second}
		return
	}
	c.http = client
}

// SetBaseURL 覆盖默认的 OpenAI API 地址。
func (c *affirmationClient) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

func (c *affirmationClient) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("openai api key not configured")
	}

	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   100,
		Temperature: 0.8,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openai response: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(parsed.Error.Message)
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("openai error: %s", message)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai returned empty content")
	}

	return content, nil
}

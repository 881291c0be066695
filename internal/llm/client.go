package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to an OpenAI-compatible chat completions endpoint
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *resty.Client
}

// Message is one entry in a chat completion conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new completion client
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  resty.New().SetTimeout(30 * time.Second),
	}
}

// Complete sends one chat completion request and returns the raw text of the
// first choice. Provider errors surface as {error:{message}} and are
// returned as Go errors.
func (c *Client) Complete(ctx context.Context, messages []Message, maxTokens int, temperature float64) (string, error) {
	req := completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.baseURL + "/v1/chat/completions")

	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	var completion completionResponse
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("completion provider error: %s", completion.Error.Message)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("completion provider returned status %d", resp.StatusCode())
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

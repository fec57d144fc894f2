// Package ai provides structured-field extraction and proposal comparison
// over a best-effort generative text call, with deterministic fallbacks.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Generator is a single-shot text generation call. The prompt instructs an
// output schema but nothing enforces it; callers must treat the output as
// untrusted.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Unavailable is the Generator used when no API key is configured. Every
// call fails immediately, so extraction always takes the deterministic
// fallback path instead of blocking.
type Unavailable struct{}

// Generate always fails
func (Unavailable) Generate(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("generative backend not configured")
}

// Client is the OpenAI-backed Generator used in production
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a new OpenAI client
func NewClient(apiKey string, timeoutSeconds int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	return &Client{
		client:  openai.NewClient(apiKey),
		model:   string(openai.GPT4oMini),
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// Generate issues one chat completion and returns the raw text output.
// The call is bounded by the configured timeout; a timeout surfaces as an
// ordinary error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   1000,
			Temperature: 0.2,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

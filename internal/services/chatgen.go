package services

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ChatGenService talks to an OpenAI-compatible chat completions endpoint
// with a bearer token. The reply is read from choices[0].message.content.
type ChatGenService struct {
	client *openai.Client
	model  string
}

func NewChatGenService(apiKey, baseURL, model string) *ChatGenService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &ChatGenService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete implements CompletionClient. No request timeout is set: the call
// blocks for as long as the endpoint takes, and the caller owns progress
// indication.
func (s *ChatGenService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("API error (status %d): %w", apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("network error calling chat completions: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

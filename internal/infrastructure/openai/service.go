package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are Lyn, the assistant behind AskLyn. Answer the user's question using the
knowledge-base excerpts provided. If they do not cover the question, say so briefly
and answer from general knowledge.`

// Service generates replies with an OpenAI-compatible chat completion API.
type Service struct {
	client *openai.Client
	model  string
}

// NewService returns nil when apiKey is empty.
func NewService(apiKey, model, baseURL string) *Service {
	if apiKey == "" {
		return nil
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	logger.Info(logger.SERVICE, "Initialising OpenAI generator with model %s", model)
	return &Service{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate answers query grounded on the retrieved passages.
func (s *Service) Generate(ctx context.Context, query string, passages []string) (string, error) {
	excerpts := "No specific context found."
	if len(passages) > 0 {
		excerpts = "- " + strings.Join(passages, "\n- ")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleSystem, Content: "Knowledge base excerpts:\n" + excerpts},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

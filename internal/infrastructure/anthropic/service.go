package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/deepgram/asklyn/pkg/logger"
)

const (
	maxTokens    = 1024
	systemPrompt = `You are Lyn, the assistant behind AskLyn. Answer the user's question using the
knowledge-base excerpts provided. If they do not cover the question, say so briefly
and answer from general knowledge.`
)

// Service generates replies with the Anthropic Messages API.
type Service struct {
	client anthropic.Client
	model  string
}

// NewService returns nil when apiKey is empty. baseURL is optional.
func NewService(apiKey, model, baseURL string) *Service {
	if apiKey == "" {
		return nil
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	logger.Info(logger.SERVICE, "Initialising Anthropic generator with model %s", model)
	return &Service{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Generate answers query grounded on the retrieved passages.
func (s *Service) Generate(ctx context.Context, query string, passages []string) (string, error) {
	excerpts := "No specific context found."
	if len(passages) > 0 {
		excerpts = "- " + strings.Join(passages, "\n- ")
	}

	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
			{Text: "Knowledge base excerpts:\n" + excerpts},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content returned")
	}
	return b.String(), nil
}

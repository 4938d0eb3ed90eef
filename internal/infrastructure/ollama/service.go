package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/ollama/ollama/api"
)

const systemPrompt = `You are Lyn, the assistant behind AskLyn. Answer briefly, using the
knowledge-base excerpts in the user's message where they are relevant.`

// Service generates replies with a model served by a local Ollama instance.
type Service struct {
	client *api.Client
	model  string
}

// NewService returns nil when model is empty.
func NewService(host, model string) (*Service, error) {
	if model == "" {
		return nil, nil
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	logger.Info(logger.SERVICE, "Initialising Ollama generator with model %s at %s", model, host)
	return &Service{
		client: api.NewClient(u, &http.Client{}),
		model:  model,
	}, nil
}

// Generate answers query grounded on the retrieved passages.
func (s *Service) Generate(ctx context.Context, query string, passages []string) (string, error) {
	excerpts := "No specific context found."
	if len(passages) > 0 {
		excerpts = "- " + strings.Join(passages, "\n- ")
	}

	stream := false
	req := api.ChatRequest{
		Model: s.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Knowledge base excerpts:\n" + excerpts + "\n\nQuestion: " + query},
		},
		Stream: &stream,
	}

	var b strings.Builder
	if err := s.client.Chat(ctx, &req, func(res api.ChatResponse) error {
		b.WriteString(res.Message.Content)
		return nil
	}); err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from model %s", s.model)
	}
	return b.String(), nil
}

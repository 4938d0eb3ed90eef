package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepgram/asklyn/internal/services/knowledge"
	"github.com/deepgram/asklyn/pkg/logger"
)

var ErrEmptyMessage = errors.New("no message provided")

// Generator turns a question and the retrieved passages into a reply.
type Generator interface {
	Generate(ctx context.Context, query string, passages []string) (string, error)
}

// Reply is the body returned by the chat endpoints.
type Reply struct {
	Response    string   `json:"response"`
	ContextUsed []string `json:"context_used"`
}

// Service answers chat messages: retrieve from the knowledge base, then generate.
type Service struct {
	knowledge *knowledge.Service
	generator Generator
	topK      int
}

func NewService(kb *knowledge.Service, generator Generator, topK int) *Service {
	if generator == nil {
		generator = PersonaGenerator{}
	}
	return &Service{knowledge: kb, generator: generator, topK: topK}
}

func (s *Service) Respond(ctx context.Context, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	matches, err := s.knowledge.Retrieve(ctx, message, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	passages := make([]string, 0, len(matches))
	for _, m := range matches {
		passages = append(passages, m.Document.Text)
	}
	logger.Debug(logger.CHAT, "Retrieved %d passages for query", len(passages))

	response, err := s.generator.Generate(ctx, message, passages)
	if err != nil {
		return nil, fmt.Errorf("generating response: %w", err)
	}

	return &Reply{Response: response, ContextUsed: passages}, nil
}

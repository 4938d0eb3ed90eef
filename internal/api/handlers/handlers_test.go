package handlers

import (
	"context"
	"testing"

	"github.com/deepgram/asklyn/internal/services/chat"
	"github.com/deepgram/asklyn/internal/services/knowledge"
	"github.com/stretchr/testify/require"
)

func newKnowledge(t *testing.T) *knowledge.Service {
	t.Helper()
	kb := knowledge.NewService(knowledge.NewMemoryStore())
	require.NoError(t, kb.Seed(context.Background()))
	return kb
}

func newChat(t *testing.T, generator chat.Generator) (*chat.Service, *knowledge.Service) {
	t.Helper()
	kb := newKnowledge(t)
	return chat.NewService(kb, generator, 2), kb
}

type failingGenerator struct{ err error }

func (g failingGenerator) Generate(context.Context, string, []string) (string, error) {
	return "", g.err
}

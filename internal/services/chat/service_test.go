package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deepgram/asklyn/internal/services/knowledge"
)

type stubGenerator struct {
	query    string
	passages []string
	err      error
}

func (g *stubGenerator) Generate(_ context.Context, query string, passages []string) (string, error) {
	g.query, g.passages = query, passages
	if g.err != nil {
		return "", g.err
	}
	return "generated", nil
}

func newKnowledge(t *testing.T) *knowledge.Service {
	t.Helper()
	kb := knowledge.NewService(knowledge.NewMemoryStore())
	if err := kb.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return kb
}

func TestRespondPassesRetrievedContext(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewService(newKnowledge(t), gen, 2)

	reply, err := svc.Respond(context.Background(), "What does RAG stand for?")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if reply.Response != "generated" {
		t.Errorf("Response = %q", reply.Response)
	}
	if len(reply.ContextUsed) == 0 || reply.ContextUsed[0] != knowledge.SeedDocuments[2] {
		t.Errorf("ContextUsed = %v", reply.ContextUsed)
	}
	if gen.query != "What does RAG stand for?" || len(gen.passages) != len(reply.ContextUsed) {
		t.Errorf("generator saw query=%q passages=%v", gen.query, gen.passages)
	}
}

func TestRespondRejectsEmptyMessage(t *testing.T) {
	svc := NewService(newKnowledge(t), &stubGenerator{}, 2)

	for _, msg := range []string{"", "   "} {
		if _, err := svc.Respond(context.Background(), msg); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Respond(%q) error = %v, want ErrEmptyMessage", msg, err)
		}
	}
}

func TestRespondWrapsGeneratorError(t *testing.T) {
	boom := errors.New("model unavailable")
	svc := NewService(newKnowledge(t), &stubGenerator{err: boom}, 2)

	if _, err := svc.Respond(context.Background(), "hello"); !errors.Is(err, boom) {
		t.Errorf("Respond() error = %v, want wrapped %v", err, boom)
	}
}

func TestPersonaGenerator(t *testing.T) {
	tests := []struct {
		name     string
		passages []string
		contains []string
	}{
		{
			name:     "with context",
			passages: []string{"first passage", "second passage"},
			contains: []string{"**Analysis based on Knowledge Base:**\n\nfirst passage\nsecond passage\n\n", "about 'hi'"},
		},
		{
			name:     "without context",
			contains: []string{"No specific context found.", "**Lyn's Insight:**"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PersonaGenerator{}.Generate(context.Background(), "hi", tt.passages)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Generate() = %q, want it to contain %q", got, want)
				}
			}
		})
	}
}

func TestNewServiceDefaultsToPersona(t *testing.T) {
	svc := NewService(newKnowledge(t), nil, 2)

	reply, err := svc.Respond(context.Background(), "Can I upload text files?")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if !strings.Contains(reply.Response, "Lyn's Insight") {
		t.Errorf("Response = %q, want persona text", reply.Response)
	}
}

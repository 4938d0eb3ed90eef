package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/google/uuid"
)

// MinScore is the similarity a document must exceed to be returned.
const MinScore = 0.1

var ErrEmptyDocument = errors.New("document is empty")

// SeedDocuments are loaded into an empty knowledge base at start-up.
var SeedDocuments = []string{
	"AskLyn is an advanced AI assistant designed to help you with your tasks.",
	"The creator of AskLyn is an expert developer focusing on RAG applications.",
	"RAG stands for Retrieval-Augmented Generation, combining search with LLMs.",
	"You can upload text files to this knowledge base to expand AskLyn's mind.",
}

// Match is a retrieved document and its cosine similarity to the query.
type Match struct {
	Document Document
	Score    float64
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Add stores text under name and returns the new document count.
func (s *Service) Add(ctx context.Context, name, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyDocument
	}

	doc := Document{
		ID:      uuid.New().String(),
		Name:    name,
		Text:    text,
		AddedAt: s.now(),
	}
	total, err := s.store.Add(ctx, doc)
	if err != nil {
		return 0, err
	}

	logger.Debug(logger.SERVICE, "Added document %s (%s), %d total", doc.ID, name, total)
	return total, nil
}

// Put stores text under name, replacing any document already stored under
// that name, and returns the document count.
func (s *Service) Put(ctx context.Context, name, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyDocument
	}

	doc := Document{
		ID:      uuid.New().String(),
		Name:    name,
		Text:    text,
		AddedAt: s.now(),
	}
	total, err := s.store.Put(ctx, doc)
	if err != nil {
		return 0, err
	}

	logger.Debug(logger.SERVICE, "Stored document %s (%s), %d total", doc.ID, name, total)
	return total, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Retrieve ranks every document against query by TF-IDF cosine similarity
// and returns at most topK matches scoring above MinScore, best first.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) ([]Match, error) {
	docs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	if len(docs) == 0 || topK <= 0 {
		return nil, nil
	}

	corpus := make([]string, 0, len(docs)+1)
	corpus = append(corpus, query)
	for _, d := range docs {
		corpus = append(corpus, d.Text)
	}
	vectors := vectorize(corpus)

	matches := make([]Match, len(docs))
	for i, d := range docs {
		matches[i] = Match{Document: d, Score: cosine(vectors[0], vectors[i+1])}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	out := matches[:0]
	for _, m := range matches {
		if m.Score > MinScore {
			out = append(out, m)
		}
	}
	return out, nil
}

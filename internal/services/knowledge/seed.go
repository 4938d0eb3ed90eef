package knowledge

import (
	"context"
	"fmt"
	"os"

	"github.com/deepgram/asklyn/pkg/logger"
	"gopkg.in/yaml.v3"
)

// SeedDocument is one entry of a seed file.
type SeedDocument struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

type seedFile struct {
	Documents []SeedDocument `yaml:"documents"`
}

// LoadSeedFile reads seed documents from a YAML file of the form
//
//	documents:
//	  - name: about
//	    text: AskLyn is ...
func LoadSeedFile(path string) ([]SeedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	if len(f.Documents) == 0 {
		return nil, fmt.Errorf("seed file %s has no documents", path)
	}

	for i := range f.Documents {
		if f.Documents[i].Name == "" {
			f.Documents[i].Name = fmt.Sprintf("seed-%d", i+1)
		}
	}
	return f.Documents, nil
}

func defaultSeeds() []SeedDocument {
	docs := make([]SeedDocument, len(SeedDocuments))
	for i, text := range SeedDocuments {
		docs[i] = SeedDocument{Name: fmt.Sprintf("seed-%d", i+1), Text: text}
	}
	return docs
}

// Seed fills an empty store with SeedDocuments.
func (s *Service) Seed(ctx context.Context) error {
	return s.SeedWith(ctx, defaultSeeds())
}

// SeedWith fills an empty store with docs. A store that already holds
// documents is left alone.
func (s *Service) SeedWith(ctx context.Context, docs []SeedDocument) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}
	if n > 0 {
		logger.Info(logger.SERVICE, "Knowledge base already holds %d documents", n)
		return nil
	}

	for _, d := range docs {
		if _, err := s.Add(ctx, d.Name, d.Text); err != nil {
			return fmt.Errorf("seeding %s: %w", d.Name, err)
		}
	}
	logger.Info(logger.SERVICE, "Seeded knowledge base with %d documents", len(docs))
	return nil
}

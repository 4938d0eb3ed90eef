package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeedFile(t, `
documents:
  - name: hours
    text: The support desk is open from nine to five.
  - text: |
      Lyn answers questions about the
      documents in this knowledge base.
`)

	docs, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("LoadSeedFile() returned %d documents, want 2", len(docs))
	}
	if docs[0].Name != "hours" {
		t.Errorf("docs[0].Name = %q, want hours", docs[0].Name)
	}
	if docs[1].Name != "seed-2" {
		t.Errorf("docs[1].Name = %q, want seed-2", docs[1].Name)
	}

	kb := NewService(NewMemoryStore())
	if err := kb.SeedWith(context.Background(), docs); err != nil {
		t.Fatalf("SeedWith() error = %v", err)
	}
	matches, err := kb.Retrieve(context.Background(), "when is the support desk open", 1)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(matches) != 1 || matches[0].Document.Name != "hours" {
		t.Errorf("Retrieve() = %+v, want hours", matches)
	}
}

func TestLoadSeedFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "documents: [unclosed"},
		{"no documents", "documents: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSeedFile(writeSeedFile(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSeedWithRejectsEmptyDocument(t *testing.T) {
	kb := NewService(NewMemoryStore())
	err := kb.SeedWith(context.Background(), []SeedDocument{{Name: "blank", Text: " "}})
	if err == nil {
		t.Error("expected an error for an empty seed document")
	}
}

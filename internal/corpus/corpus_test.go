package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/skyatlas/missionq/pkg/common"
)

func TestSeedDocuments_WellFormed(t *testing.T) {
	docs := SeedDocuments()
	if len(docs) == 0 {
		t.Fatal("seed corpus is empty")
	}

	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if doc.ID == "" || doc.Title == "" || doc.Content == "" {
			t.Fatalf("incomplete seed document: %+v", doc)
		}
		if _, ok := seen[doc.ID]; ok {
			t.Fatalf("duplicate seed document id %q", doc.ID)
		}
		seen[doc.ID] = struct{}{}
	}
}

func TestNormalize(t *testing.T) {
	t.Run("assigns missing ids", func(t *testing.T) {
		docs, err := Normalize([]common.Document{
			{Title: "A", Content: "some content"},
			{ID: "fixed", Title: "B", Content: "more content"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if docs[0].ID == "" {
			t.Fatal("expected generated id")
		}
		if docs[1].ID != "fixed" {
			t.Fatalf("existing id replaced: %q", docs[1].ID)
		}
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := Normalize([]common.Document{{Title: "A"}})
		if err == nil {
			t.Fatal("expected error for document without content")
		}
	})
}

func TestLoadFile(t *testing.T) {
	docs := []common.Document{
		{ID: "d1", Title: "A", Content: "alpha content"},
		{Title: "B", Content: "beta content"},
	}
	data, err := json.Marshal(docs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got))
	}
	if got[1].ID == "" {
		t.Fatal("expected generated id for second document")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

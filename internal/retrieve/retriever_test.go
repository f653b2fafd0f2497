package retrieve

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/cognitia/internal/index"
	"github.com/ppiankov/cognitia/internal/model"
)

type fixedEmbedder struct {
	vectors map[string][]float32
}

func (e *fixedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := e.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

func (e *fixedEmbedder) Dimensions() int   { return 3 }
func (e *fixedEmbedder) ModelName() string { return "test/fixed" }

func TestRetrieveCapsAtTopK(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"question": {1, 0, 0},
		"close":    {0.9, 0.1, 0},
		"near":     {0.8, 0.2, 0},
		"far":      {0, 1, 0},
	}}

	store, err := index.Open(filepath.Join(t.TempDir(), "index.db"), "research_knowledge", embedder, logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	docs := []model.NormalizedDocument{
		{SourceFile: "a", Kind: model.SourcePaper, Text: "close"},
		{SourceFile: "b", Kind: model.SourcePaper, Text: "near"},
		{SourceFile: "c", Kind: model.SourcePaper, Text: "far"},
	}
	if err := store.Rebuild(context.Background(), docs); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	r := New(store, 2)
	results, err := r.Retrieve(context.Background(), "question")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Text != "close" {
		t.Errorf("top result = %q, want %q", results[0].Text, "close")
	}
}

func TestRetrieveEmptyIndex(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := index.Open(filepath.Join(t.TempDir(), "index.db"), "research_knowledge", &fixedEmbedder{}, logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	r := New(store, 3)
	results, err := r.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

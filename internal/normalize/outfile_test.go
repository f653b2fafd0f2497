package normalize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/cognitia/internal/model"
)

func testDoc(t *testing.T) model.NormalizedDocument {
	t.Helper()
	producedAt, err := time.Parse(TimeFormat, "2025-06-01_10-30-00")
	if err != nil {
		t.Fatalf("parse test timestamp: %v", err)
	}
	return model.NormalizedDocument{
		SourceFile: "data/raw_papers/graph neural networks.pdf",
		Kind:       model.SourcePaper,
		Text:       "GNNs operate on graph-structured data.",
		ProducedAt: producedAt,
	}
}

func TestWriteReadDocument_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := testDoc(t)

	path, err := WriteDocument(dir, doc)
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}

	if got.SourceFile != doc.SourceFile {
		t.Errorf("source: got %q, want %q", got.SourceFile, doc.SourceFile)
	}
	if got.Kind != doc.Kind {
		t.Errorf("kind: got %q, want %q", got.Kind, doc.Kind)
	}
	if !got.ProducedAt.Equal(doc.ProducedAt) {
		t.Errorf("producedAt: got %v, want %v", got.ProducedAt, doc.ProducedAt)
	}
	if got.Text != doc.Text {
		t.Errorf("text: got %q, want %q", got.Text, doc.Text)
	}
}

func TestWriteDocument_HeaderFormat(t *testing.T) {
	dir := t.TempDir()
	doc := testDoc(t)

	path, err := WriteDocument(dir, doc)
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) < 5 {
		t.Fatalf("expected at least 5 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "[SOURCE]: ") {
		t.Errorf("line 0 = %q, want [SOURCE] header", lines[0])
	}
	if lines[1] != "[TYPE]: paper" {
		t.Errorf("line 1 = %q, want %q", lines[1], "[TYPE]: paper")
	}
	if !strings.HasPrefix(lines[2], "[DATE]: ") {
		t.Errorf("line 2 = %q, want [DATE] header", lines[2])
	}
	if lines[3] != "" {
		t.Errorf("line 3 = %q, want blank separator", lines[3])
	}
}

func TestReadDocument_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte("no headers here\njust text"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := ReadDocument(path); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestReadDir_LexicalOrderAndClear(t *testing.T) {
	dir := t.TempDir()
	doc := testDoc(t)

	// Two documents with different source names
	doc2 := doc
	doc2.SourceFile = "data/transcripts/a_video.vtt"
	doc2.Kind = model.SourceTranscript

	if _, err := WriteDocument(dir, doc); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if _, err := WriteDocument(dir, doc2); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}

	docs, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Name > docs[1].Name {
		t.Errorf("documents not in lexical order: %q before %q", docs[0].Name, docs[1].Name)
	}

	if err := ClearDir(dir); err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	docs, err = ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir after clear: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty dir after clear, got %d documents", len(docs))
	}
}

func TestReadDir_MissingDir(t *testing.T) {
	docs, err := ReadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("expected no error for missing dir, got %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

package normalize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/cognitia/internal/model"
)

// Normalized-document file format: three metadata header lines, one blank
// line, then the cleaned text body. Downstream indexing re-reads these
// files, so the format must round-trip exactly.
const (
	headerSource = "[SOURCE]: "
	headerType   = "[TYPE]: "
	headerDate   = "[DATE]: "

	// TimeFormat stamps normalized output files
	TimeFormat = "2006-01-02_15-04-05"
)

// StoredDocument pairs a normalized document with the file it is stored in;
// the file name becomes the chunk's source metadata at index time.
type StoredDocument struct {
	Name string
	Doc  model.NormalizedDocument
}

// WriteDocument writes one normalized text unit into dir and returns the
// file path. The name encodes kind, source basename and timestamp so
// reprocessing runs never collide.
func WriteDocument(dir string, doc model.NormalizedDocument) (string, error) {
	name := fmt.Sprintf("%s_%s_%s.txt",
		doc.Kind,
		sanitizeName(filepath.Base(doc.SourceFile), 60),
		doc.ProducedAt.Format(TimeFormat),
	)
	path := filepath.Join(dir, name)

	var b strings.Builder
	b.WriteString(headerSource + doc.SourceFile + "\n")
	b.WriteString(headerType + string(doc.Kind) + "\n")
	b.WriteString(headerDate + doc.ProducedAt.Format(TimeFormat) + "\n")
	b.WriteString("\n")
	b.WriteString(doc.Text)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write normalized document: %w", err)
	}
	return path, nil
}

// ReadDocument parses a normalized text unit back into a NormalizedDocument.
func ReadDocument(path string) (model.NormalizedDocument, error) {
	var doc model.NormalizedDocument

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read normalized document: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.SplitN(content, "\n", 5)
	if len(lines) < 5 {
		return doc, fmt.Errorf("%s: truncated normalized document", path)
	}
	if !strings.HasPrefix(lines[0], headerSource) ||
		!strings.HasPrefix(lines[1], headerType) ||
		!strings.HasPrefix(lines[2], headerDate) ||
		lines[3] != "" {
		return doc, fmt.Errorf("%s: malformed header block", path)
	}

	producedAt, err := time.Parse(TimeFormat, strings.TrimPrefix(lines[2], headerDate))
	if err != nil {
		return doc, fmt.Errorf("%s: parse date header: %w", path, err)
	}

	doc.SourceFile = strings.TrimPrefix(lines[0], headerSource)
	doc.Kind = model.SourceKind(strings.TrimPrefix(lines[1], headerType))
	doc.ProducedAt = producedAt
	doc.Text = lines[4]
	return doc, nil
}

// ReadDir loads every normalized document from dir in lexical filename
// order, so successive index rebuilds over the same working set see the
// same ordering.
func ReadDir(dir string) ([]StoredDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read processed dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]StoredDocument, 0, len(names))
	for _, name := range names {
		doc, err := ReadDocument(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, StoredDocument{Name: name, Doc: doc})
	}
	return docs, nil
}

// ClearDir removes previously normalized output so stale documents cannot
// leak into a fresh index (full rebuild policy).
func ClearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read processed dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("clear processed dir: %w", err)
		}
	}
	return nil
}

// sanitizeName makes a source basename safe for reuse inside an output
// filename.
func sanitizeName(name string, maxLen int) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	if len(name) > maxLen {
		name = name[:maxLen]
	}
	return name
}

// Package normalize turns heterogeneous raw source files (PDF papers,
// WebVTT caption tracks) into cleaned plain-text documents ready for
// embedding and indexing.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/cognitia/internal/model"
)

// ExtractionError reports a single source document that failed to parse.
// The batch never aborts on one: the document is logged and skipped.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Normalizer processes the raw working set into the processed directory
type Normalizer struct {
	cfg    model.DataConfig
	logger *logrus.Logger
	now    func() time.Time
}

// New creates a normalizer over the configured data directories
func New(cfg model.DataConfig, logger *logrus.Logger) *Normalizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Normalizer{cfg: cfg, logger: logger, now: time.Now}
}

// Normalize extracts and cleans a single raw document. A failed extraction
// returns an *ExtractionError.
func (n *Normalizer) Normalize(raw model.RawDocument) (model.NormalizedDocument, error) {
	var (
		text string
		err  error
	)
	switch raw.Kind {
	case model.SourcePaper:
		text, err = extractPaper(raw.Path)
	case model.SourceTranscript:
		text, err = extractTranscript(raw.Path)
	default:
		err = fmt.Errorf("unknown source kind %q", raw.Kind)
	}
	if err != nil {
		return model.NormalizedDocument{}, &ExtractionError{Path: raw.Path, Err: err}
	}

	cleaned := Clean(text)
	if cleaned == "" {
		return model.NormalizedDocument{}, &ExtractionError{Path: raw.Path, Err: errors.New("no text extracted")}
	}

	return model.NormalizedDocument{
		SourceFile: raw.Path,
		Kind:       raw.Kind,
		Text:       cleaned,
		ProducedAt: n.now().UTC(),
	}, nil
}

// BatchResult summarizes one normalization run
type BatchResult struct {
	Processed int
	Skipped   int
}

// Run normalizes the whole raw working set into the processed directory.
// Previous output is cleared first (full rebuild policy); per-document
// extraction failures are logged and skipped.
func (n *Normalizer) Run(ctx context.Context) (*BatchResult, error) {
	if err := os.MkdirAll(n.cfg.ProcessedDir, 0755); err != nil {
		return nil, fmt.Errorf("create processed dir: %w", err)
	}
	if err := ClearDir(n.cfg.ProcessedDir); err != nil {
		return nil, err
	}

	raws, err := n.collectRaw()
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		doc, err := n.Normalize(raw)
		if err != nil {
			result.Skipped++
			n.logger.WithFields(logrus.Fields{
				"path": raw.Path,
				"kind": raw.Kind,
			}).WithError(err).Warn("Extraction failed, skipping document")
			continue
		}

		if _, err := WriteDocument(n.cfg.ProcessedDir, doc); err != nil {
			result.Skipped++
			n.logger.WithField("path", raw.Path).WithError(err).Warn("Failed to persist normalized document")
			continue
		}

		result.Processed++
		n.logger.WithFields(logrus.Fields{
			"path":  raw.Path,
			"kind":  raw.Kind,
			"chars": len(doc.Text),
		}).Info("Normalized document")
	}

	return result, nil
}

// collectRaw lists the raw working set in deterministic order
func (n *Normalizer) collectRaw() ([]model.RawDocument, error) {
	var raws []model.RawDocument

	papers, err := listFiles(n.cfg.PapersDir, ".pdf")
	if err != nil {
		return nil, err
	}
	for _, p := range papers {
		raws = append(raws, model.RawDocument{Path: p, Kind: model.SourcePaper})
	}

	transcripts, err := listFiles(n.cfg.TranscriptsDir, ".vtt", ".webvtt")
	if err != nil {
		return nil, err
	}
	for _, p := range transcripts {
		raws = append(raws, model.RawDocument{Path: p, Kind: model.SourceTranscript})
	}

	return raws, nil
}

func listFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

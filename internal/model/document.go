package model

import "time"

// SourceKind identifies where a raw source document came from
type SourceKind string

const (
	SourcePaper      SourceKind = "paper"      // Page-oriented documents (PDF papers)
	SourceTranscript SourceKind = "transcript" // Timestamped caption tracks (WebVTT)
)

// RawDocument is an ephemeral handle to a source file awaiting normalization
type RawDocument struct {
	Path string     // Path to the raw file on disk
	Kind SourceKind // How the file should be parsed
}

// NormalizedDocument is the cleaned output of the normalizer. It is written
// once and never mutated; identity is SourceFile + ProducedAt so successive
// reprocessing runs cannot collide.
type NormalizedDocument struct {
	SourceFile string     `json:"source_file"` // Original file path
	Kind       SourceKind `json:"kind"`
	Text       string     `json:"text"`        // Cleaned printable-ASCII text, single-spaced
	ProducedAt time.Time  `json:"produced_at"` // When normalization ran
}

// Chunk is one retrievable unit of text stored in the vector index
// (one whole normalized document).
type Chunk struct {
	ID     string `json:"id"`     // Unique within a collection (doc_0, doc_1, ...)
	Text   string `json:"text"`   // The indexed text
	Source string `json:"source"` // Normalized file the chunk came from
}

// ScoredChunk is a retrieval hit ranked by vector similarity
type ScoredChunk struct {
	Chunk
	Similarity float64 `json:"similarity"` // Cosine similarity (higher is closer)
}

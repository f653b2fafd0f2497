// Package index stores chunk embeddings in SQLite and answers nearest
// neighbour queries by brute-force cosine similarity. The working sets
// involved are small enough that a scan beats carrying a vector database.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/ppiankov/cognitia/internal/embed"
	"github.com/ppiankov/cognitia/internal/model"
)

// Store is a SQLite-backed vector index over document chunks. Chunks are
// scoped to a named collection so several working sets can share one
// database file.
type Store struct {
	db         *sql.DB
	collection string
	embedder   embed.Embedder
	logger     *logrus.Logger
	mu         sync.RWMutex
}

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	seq        INTEGER PRIMARY KEY,
	collection TEXT NOT NULL,
	chunk_id   TEXT NOT NULL,
	source     TEXT NOT NULL,
	text       TEXT NOT NULL,
	embedding  BLOB NOT NULL,
	UNIQUE (collection, chunk_id)
);
`

// Open opens or creates the index database at the given path, scoped to
// the named collection.
func Open(path, collection string, embedder embed.Embedder, logger *logrus.Logger) (*Store, error) {
	if collection == "" {
		collection = "default"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}

	return &Store{
		db:         db,
		collection: collection,
		embedder:   embedder,
		logger:     logger,
	}, nil
}

// Rebuild replaces the entire index with one chunk per document. Chunk
// ids are assigned doc_0, doc_1, ... in the order the documents arrive.
// All embeddings are computed before the old index is touched, so a
// failed embedding leaves the previous index intact.
func (s *Store) Rebuild(ctx context.Context, docs []model.NormalizedDocument) error {
	chunks := make([]model.Chunk, len(docs))
	vectors := make([][]float32, len(docs))

	for i, doc := range docs {
		vec, err := s.embedder.Embed(ctx, doc.Text)
		if err != nil {
			return fmt.Errorf("embed document %s: %w", doc.SourceFile, err)
		}
		chunks[i] = model.Chunk{
			ID:     fmt.Sprintf("doc_%d", i),
			Text:   doc.Text,
			Source: doc.SourceFile,
		}
		vectors[i] = vec
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE collection = ?", s.collection); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	for i, chunk := range chunks {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO chunks (collection, chunk_id, source, text, embedding) VALUES (?, ?, ?, ?, ?)",
			s.collection, chunk.ID, chunk.Source, chunk.Text, embed.MarshalVector(vectors[i]))
		if err != nil {
			return fmt.Errorf("insert chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"collection": s.collection,
		"chunks":     len(chunks),
	}).Info("index rebuilt")
	return nil
}

// Count returns the number of chunks currently indexed.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE collection = ?", s.collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Query embeds the question and returns up to k chunks ranked by cosine
// similarity, highest first. Equal scores rank in insertion order. An
// empty index yields an empty result, not an error.
func (s *Store) Query(ctx context.Context, question string, k int) ([]model.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	qvec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT chunk_id, source, text, embedding FROM chunks WHERE collection = ? ORDER BY seq",
		s.collection)
	if err != nil {
		return nil, fmt.Errorf("scan index: %w", err)
	}
	defer rows.Close()

	var scored []model.ScoredChunk
	for rows.Next() {
		var chunk model.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.Source, &chunk.Text, &blob); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}
		vec, err := embed.UnmarshalVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decode embedding for %s: %w", chunk.ID, err)
		}
		scored = append(scored, model.ScoredChunk{
			Chunk:      chunk,
			Similarity: Cosine(qvec, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

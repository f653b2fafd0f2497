// Package retrieve selects the chunks most relevant to a question.
package retrieve

import (
	"context"

	"github.com/ppiankov/cognitia/internal/index"
	"github.com/ppiankov/cognitia/internal/model"
)

// Retriever answers similarity queries against the index with a fixed
// result budget.
type Retriever struct {
	store *index.Store
	topK  int
}

// New creates a retriever over the given store. topK values below 1
// fall back to 3.
func New(store *index.Store, topK int) *Retriever {
	if topK < 1 {
		topK = 3
	}
	return &Retriever{store: store, topK: topK}
}

// Retrieve returns up to topK chunks ranked by similarity to the
// question. An empty result means no knowledge is indexed or nothing
// matched, which callers treat as a normal outcome.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]model.ScoredChunk, error) {
	return r.store.Query(ctx, question, r.topK)
}

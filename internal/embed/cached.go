package embed

import (
	"context"
	"time"

	"github.com/ppiankov/cognitia/internal/cache"
)

// CachedEmbedder wraps an Embedder with a cache layer keyed on the model
// name and input text, so rebuilding the index over an unchanged working
// set skips the embedding service entirely.
type CachedEmbedder struct {
	inner Embedder
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedEmbedder wraps an embedder with the given cache.
func NewCachedEmbedder(inner Embedder, c cache.Cache, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Embed returns a cached vector when available, otherwise delegates to
// the wrapped embedder and stores the result.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cache.Key(e.inner.ModelName() + "|" + text)

	if data, found := e.cache.Get(key); found {
		if vec, err := UnmarshalVector(data); err == nil {
			return vec, nil
		}
		// A corrupt entry falls through to a fresh computation.
		_ = e.cache.Delete(key)
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	_ = e.cache.Set(key, MarshalVector(vec), e.ttl)
	return vec, nil
}

// Dimensions returns the wrapped embedder's vector length.
func (e *CachedEmbedder) Dimensions() int {
	return e.inner.Dimensions()
}

// ModelName returns the wrapped embedder's model identifier.
func (e *CachedEmbedder) ModelName() string {
	return e.inner.ModelName()
}

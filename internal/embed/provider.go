// Package embed turns chunk text into fixed-size vectors for the index.
// Providers are selected by name the same way completion providers are,
// and every provider is wrapped in a cache so unchanged documents never
// hit the embedding service twice.
package embed

import (
	"context"
	"fmt"
	"time"
)

// Embedder computes a vector representation of a piece of text.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the length of the vectors this embedder produces.
	Dimensions() int

	// ModelName returns the model identifier, used for cache keying.
	ModelName() string
}

// Config holds embedding provider configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheDir string
}

// DefaultConfig returns sensible defaults for embedding.
func DefaultConfig() Config {
	return Config{
		Provider: "ollama",
		Timeout:  30 * time.Second,
	}
}

// NewEmbedder creates an embedder based on the configured provider.
func NewEmbedder(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIEmbedder(cfg)
	case "ollama":
		return newOllamaEmbedder(cfg)
	case "":
		return nil, fmt.Errorf("embedding provider is required")
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

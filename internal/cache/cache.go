// Package cache provides the layered byte cache used to memoize embedding
// vectors: embedding is a pure function of text, so a vector can be reused
// across index rebuilds and queries.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from arbitrary input (model name + text)
func Key(input string) string {
	hash := sha256.Sum256([]byte(input))
	return "cognitia:v1:" + hex.EncodeToString(hash[:])
}

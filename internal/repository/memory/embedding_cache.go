package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// EmbeddingCache keeps recently generated profile embeddings in process
// memory, keyed by the SHA-256 hash of the embedded text. It fronts the
// durable pgvector store so repeated matching calls for unchanged profiles
// skip the provider round trip entirely.
type EmbeddingCache struct {
	store *gocache.Cache
}

func NewEmbeddingCache(ttl time.Duration) *EmbeddingCache {
	return &EmbeddingCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *EmbeddingCache) Get(textHash string) ([]float32, bool) {
	v, ok := c.store.Get(textHash)
	if !ok {
		return nil, false
	}
	vec, ok := v.([]float32)
	return vec, ok
}

func (c *EmbeddingCache) Set(textHash string, embedding []float32) {
	c.store.Set(textHash, embedding, gocache.DefaultExpiration)
}

func (c *EmbeddingCache) Flush() {
	c.store.Flush()
}

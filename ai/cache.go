package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/ragsweep/core"
)

// VectorCache persists embeddings keyed by content ID.
type VectorCache interface {
	// GetVectors returns the cached vectors for the keys that are present.
	// Absent keys are simply missing from the returned map.
	GetVectors(ctx context.Context, keys []core.ID) (map[core.ID][]float32, error)

	// PutVectors stores vectors, replacing existing entries.
	PutVectors(ctx context.Context, entries map[core.ID][]float32) error
}

// CachedEmbedder decorates an Embedder with a VectorCache.
// Cache failures are logged and the inner embedder is used instead.
type CachedEmbedder struct {
	inner     Embedder
	cache     VectorCache
	namespace string
	logger    *slog.Logger
}

// NewCachedEmbedder wraps inner so that vectors are read from and written to cache.
// namespace separates vector spaces, typically Config.CacheNamespace().
func NewCachedEmbedder(inner Embedder, cache VectorCache, namespace string) (*CachedEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	return &CachedEmbedder{
		inner:     inner,
		cache:     cache,
		namespace: namespace,
		logger:    slog.Default().With("component", "cached-embedder"),
	}, nil
}

// Key returns the cache key for text within the embedder's namespace.
func (c *CachedEmbedder) Key(text string) core.ID {
	return core.IDFromContent(c.namespace + "\x00" + text)
}

// EmbedText embeds a single text through the cache.
func (c *CachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts embeds texts, calling the inner embedder only for cache misses.
// Duplicate texts within one call are embedded once.
func (c *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	keys := make([]core.ID, len(texts))
	for i, text := range texts {
		keys[i] = c.Key(text)
	}

	cached, err := c.cache.GetVectors(ctx, keys)
	if err != nil {
		c.logger.Warn("embedding cache read failed", "err", err)
		cached = nil
	}

	var missTexts []string
	var missKeys []core.ID
	pending := make(map[core.ID]bool)
	for i, key := range keys {
		if _, ok := cached[key]; ok || pending[key] {
			continue
		}
		pending[key] = true
		missTexts = append(missTexts, texts[i])
		missKeys = append(missKeys, key)
	}

	fresh := make(map[core.ID][]float32, len(missKeys))
	if len(missTexts) > 0 {
		vectors, err := c.inner.EmbedTexts(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(missTexts) {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbeddingCountMismatch, len(vectors), len(missTexts))
		}
		for i, key := range missKeys {
			fresh[key] = vectors[i]
		}
		if err := c.cache.PutVectors(ctx, fresh); err != nil {
			c.logger.Warn("embedding cache write failed", "count", len(fresh), "err", err)
		}
	}

	c.logger.Debug("embedded texts", "count", len(texts), "hits", len(texts)-len(missTexts), "misses", len(missTexts))

	out := make([][]float32, len(texts))
	for i, key := range keys {
		if v, ok := cached[key]; ok {
			out[i] = v
			continue
		}
		out[i] = fresh[key]
	}
	return out, nil
}

package inference

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/repository"
)

// Embedder produces an embedding vector for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// CachedEmbedder memoizes an Embedder in an EmbeddingCache.
// Cache failures are logged and fall through to the wrapped embedder.
type CachedEmbedder struct {
	next   Embedder
	cache  repository.EmbeddingCache
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmbedder wraps next. A nil cache returns next unchanged.
func NewCachedEmbedder(next Embedder, cache repository.EmbeddingCache, model string, ttl time.Duration, logger *zap.Logger) Embedder {
	if cache == nil {
		return next
	}
	return &CachedEmbedder{
		next:   next,
		cache:  cache,
		model:  model,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := CacheKey(c.model, text)

	if vec, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("embedding cache read failed", zap.Error(err))
	} else if ok {
		return vec, nil
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, vec, c.ttl); err != nil {
		c.logger.Warn("embedding cache write failed", zap.Error(err))
	}
	return vec, nil
}

// CacheKey derives the cache key for text embedded by model.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return model + ":" + hex.EncodeToString(sum[:])
}

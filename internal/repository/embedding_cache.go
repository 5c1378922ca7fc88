package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const embeddingKeyPrefix = "portfolio:embedding:"

// EmbeddingCache stores embedding vectors keyed by an opaque digest.
type EmbeddingCache interface {
	Get(ctx context.Context, key string) ([]float64, bool, error)
	Set(ctx context.Context, key string, vector []float64, ttl time.Duration) error
}

type redisEmbeddingCache struct {
	client *redis.Client
}

// NewRedisEmbeddingCache caches vectors as JSON strings.
func NewRedisEmbeddingCache(client *redis.Client) EmbeddingCache {
	return &redisEmbeddingCache{client: client}
}

func (c *redisEmbeddingCache) Get(ctx context.Context, key string) ([]float64, bool, error) {
	raw, err := c.client.Get(ctx, embeddingKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var vector []float64
	if err := json.Unmarshal(raw, &vector); err != nil {
		return nil, false, err
	}
	return vector, true, nil
}

func (c *redisEmbeddingCache) Set(ctx context.Context, key string, vector []float64, ttl time.Duration) error {
	raw, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, embeddingKeyPrefix+key, raw, ttl).Err()
}

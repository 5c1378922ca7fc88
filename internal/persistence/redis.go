package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/config"
)

const redisDialCheckTimeout = 2 * time.Second

// Redis wraps the go-redis client. Available records whether the startup ping
// succeeded; callers pick in-memory stand-ins when it did not.
type Redis struct {
	Client    *redis.Client
	Available bool
}

// NewRedis builds the client and probes it once. An unreachable server is not fatal.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	r := &Redis{Client: client}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialCheckTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable; token revocation stays in memory and embeddings are not cached",
			zap.String("addr", cfg.Addr), zap.Error(err))
		return r
	}

	r.Available = true
	logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return r
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

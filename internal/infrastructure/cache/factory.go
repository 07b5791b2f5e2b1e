package cache

import (
	"context"
	"time"

	"github.com/21501a05b6/Magnova/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// New builds the configured cache backend. When the Redis backend is
// selected but unreachable, it falls back to the in-memory cache so a
// cache outage never takes down the API.
func New(cfg *config.Config, logger *zap.Logger) Cache {
	if cfg.Dashboard.CacheBackend != "redis" {
		return NewMemoryCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, falling back to in-memory cache",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		return NewMemoryCache()
	}

	logger.Info("redis cache connected", zap.String("addr", cfg.Redis.Addr()))
	return NewRedisCache(client)
}

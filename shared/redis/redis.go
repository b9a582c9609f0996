package redis

import (
	"context"
	"errors"
	"fmt"
	"log"

	"hr_dashboard/global_models/global_cache"
	"hr_dashboard/shared/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisCache подключается к Redis и проверяет соединение через PING
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (global_cache.Cache, error) {
	if cfg == nil {
		return nil, errors.New("redis config is nil")
	}

	redisOptions := cfg.ToRedisOptions()
	client := redis.NewClient(redisOptions)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Printf("Connected to Redis at %s (DB: %d)", redisOptions.Addr, redisOptions.DB)

	return NewCacheAdapter(client), nil
}

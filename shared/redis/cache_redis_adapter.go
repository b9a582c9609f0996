package redis

import (
	"context"
	"errors"
	"time"

	"hr_dashboard/global_models/global_cache"

	"github.com/go-redis/redis/v8"
)

type CacheRedisAdapter struct {
	client *redis.Client
}

var _ global_cache.Cache = (*CacheRedisAdapter)(nil)

// конструктор для адаптера кэша на базе Redis
func NewCacheAdapter(client *redis.Client) *CacheRedisAdapter {
	return &CacheRedisAdapter{client: client}
}

// метод для завершения работы экземпляра redis
func (r *CacheRedisAdapter) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// метод для добавления значения с TTL в redis
func (r *CacheRedisAdapter) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// GetBytes отдаёт значение, отсутствие ключа превращаем в global_cache.ErrCacheMiss
func (r *CacheRedisAdapter) GetBytes(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, global_cache.ErrCacheMiss
	}
	return data, err
}

// метод удаления элемента по ключу из redis
func (r *CacheRedisAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// метод проверки существования элемента в redis по ключу
func (r *CacheRedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	return result > 0, err
}

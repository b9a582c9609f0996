package inmemory_cache

import (
	"context"
	"time"

	"hr_dashboard/global_models/global_cache"
)

// CacheAdapter приводит шардированный кэш к интерфейсу global_cache.Cache,
// тому же, что реализует Redis адаптер
type CacheAdapter struct {
	cache *InmemoryShardedCache
}

var _ global_cache.Cache = (*CacheAdapter)(nil)

func NewCacheAdapter(cache *InmemoryShardedCache) *CacheAdapter {
	return &CacheAdapter{cache: cache}
}

func (a *CacheAdapter) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	// копия, чтобы вызывающий мог переиспользовать свой буфер
	buf := make([]byte, len(value))
	copy(buf, value)
	a.cache.AddItemWithTTL(key, buf, expiration)
	return nil
}

func (a *CacheAdapter) GetBytes(_ context.Context, key string) ([]byte, error) {
	val, ok := a.cache.GetItem(key)
	if !ok {
		return nil, global_cache.ErrCacheMiss
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, global_cache.ErrCacheMiss
	}
	return data, nil
}

func (a *CacheAdapter) Delete(_ context.Context, key string) error {
	a.cache.DeleteItem(key)
	return nil
}

func (a *CacheAdapter) Exists(_ context.Context, key string) (bool, error) {
	_, ok := a.cache.GetItem(key)
	return ok, nil
}

func (a *CacheAdapter) Close() error {
	a.cache.Stop()
	return nil
}

package inmemory_cache

import (
	"sync"
	"time"
)

// шардированный кэш в памяти процесса. Используется вместо Redis,
// когда Redis не настроен: храним ответы backend API с TTL
type InmemoryShardedCache struct {
	shards    []*Shard
	numShards int
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// отдельный шард: своя мапа и свой мьютекс
type Shard struct {
	Items map[string]CacheItem
	mu    sync.RWMutex
}

// элемент кэша со временем протухания
type CacheItem struct {
	value   interface{}
	expTime time.Time
}

func (i CacheItem) expired(now time.Time) bool {
	return now.After(i.expTime)
}

package inmemory_cache

import (
	"fmt"
	"hash/fnv"
	"time"
)

// конструктор для создания кэша с указаным количеством шардов и интервалом очистки кэша.
// cleanUpInterval == 0 отключает фоновую очистку
func NewInmemoryShardedCache(numShards int, cleanUpInterval time.Duration) (*InmemoryShardedCache, error) {
	if numShards <= 0 {
		return nil, fmt.Errorf("numShards must be positive, got %d", numShards)
	}
	if numShards > 1000 {
		return nil, fmt.Errorf("numShards is too large: %d", numShards)
	}
	if cleanUpInterval < 0 {
		return nil, fmt.Errorf("cleanUpInterval must be non-negative, got %v", cleanUpInterval)
	}

	cache := &InmemoryShardedCache{
		shards:    make([]*Shard, numShards),
		numShards: numShards,
		stopChan:  make(chan struct{}),
	}
	for i := range cache.shards {
		cache.shards[i] = &Shard{Items: map[string]CacheItem{}}
	}

	if cleanUpInterval > 0 {
		go cache.cleanUp(cleanUpInterval)
	}

	return cache, nil
}

// GetItem отдаёт значение по ключу, протухшие записи считаются отсутствующими
func (c *InmemoryShardedCache) GetItem(key string) (interface{}, bool) {
	shard := c.getShard(key)

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	val, ok := shard.Items[key]
	if !ok || val.expired(time.Now()) {
		return nil, false
	}
	return val.value, true
}

// индекс шарда = fnv32a(key) % numShards
func (c *InmemoryShardedCache) getShard(key string) *Shard {
	hashf := fnv.New32a()
	// Write у fnv ошибку не возвращает
	_, _ = hashf.Write([]byte(key))
	return c.shards[hashf.Sum32()%uint32(c.numShards)]
}

// метод, чтобы записать значение в кэш с заданным TTL
func (c *InmemoryShardedCache) AddItemWithTTL(key string, value interface{}, ttl time.Duration) {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.Items[key] = CacheItem{
		value:   value,
		expTime: time.Now().Add(ttl),
	}
}

// метод удаления элемента из кэша по ключу
func (c *InmemoryShardedCache) DeleteItem(key string) {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.Items, key)
}

// Len - количество записей, включая ещё не вычищенные протухшие
func (c *InmemoryShardedCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.Items)
		shard.mu.RUnlock()
	}
	return total
}

// Stop останавливает фоновую очистку, повторный вызов безопасен
func (c *InmemoryShardedCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

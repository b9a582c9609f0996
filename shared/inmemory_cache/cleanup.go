package inmemory_cache

import "time"

// фоновая очистка: раз в interval вычищаем протухшие записи, пока не вызван Stop
func (c *InmemoryShardedCache) cleanUp(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanUpExpired()
		case <-c.stopChan:
			return
		}
	}
}

// метод для очистки кэша от устаревших данных
func (c *InmemoryShardedCache) cleanUpExpired() {
	now := time.Now()
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key, item := range shard.Items {
			if item.expired(now) {
				delete(shard.Items, key)
			}
		}
		shard.mu.Unlock()
	}
}

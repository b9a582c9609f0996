package inmemory_cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hr_dashboard/global_models/global_cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// проверяем конструктор
func TestNewInmemoryShardedCache(t *testing.T) {
	tests := []struct {
		name            string
		numShards       int
		cleanUpInterval time.Duration
		wantErr         string
	}{
		{"valid cache", 8, time.Minute, ""},
		{"single shard", 1, time.Second, ""},
		{"no cleanup", 8, 0, ""},
		{"zero shards", 0, time.Minute, "numShards must be positive, got 0"},
		{"negative shards", -1, time.Minute, "numShards must be positive, got -1"},
		{"too many shards", 1001, time.Minute, "numShards is too large: 1001"},
		{"negative interval", 8, -time.Second, fmt.Sprintf("cleanUpInterval must be non-negative, got %v", -time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, err := NewInmemoryShardedCache(tt.numShards, tt.cleanUpInterval)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, cache)
				return
			}
			require.NoError(t, err)
			defer cache.Stop()
			assert.Len(t, cache.shards, tt.numShards)
		})
	}
}

// проверяем распределение по шардам
func TestGetShardDistribution(t *testing.T) {
	cache, err := NewInmemoryShardedCache(4, 0)
	require.NoError(t, err)

	used := make(map[*Shard]bool)
	for i := 0; i < 32; i++ {
		key := fmt.Sprintf("key%d", i)
		shard := cache.getShard(key)
		assert.Same(t, shard, cache.getShard(key), "распределение должно быть детерминированным")
		used[shard] = true
	}
	assert.Greater(t, len(used), 1, "все ключи попали в один шард")
}

func TestCacheOperations(t *testing.T) {
	cache, err := NewInmemoryShardedCache(4, 0)
	require.NoError(t, err)

	t.Run("Set and Get", func(t *testing.T) {
		cache.AddItemWithTTL("test-key", "test-value", time.Minute)
		got, ok := cache.GetItem("test-key")
		assert.True(t, ok)
		assert.Equal(t, "test-value", got)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, ok := cache.GetItem("non-existent")
		assert.False(t, ok)
	})

	t.Run("Overwrite value", func(t *testing.T) {
		cache.AddItemWithTTL("same-key", "value1", time.Minute)
		cache.AddItemWithTTL("same-key", "value2", time.Minute)
		got, ok := cache.GetItem("same-key")
		assert.True(t, ok)
		assert.Equal(t, "value2", got)
	})

	t.Run("Delete removes only the given key", func(t *testing.T) {
		cache.AddItemWithTTL("a", 1, time.Minute)
		cache.AddItemWithTTL("b", 2, time.Minute)

		cache.DeleteItem("a")

		_, ok := cache.GetItem("a")
		assert.False(t, ok)
		got, ok := cache.GetItem("b")
		assert.True(t, ok)
		assert.Equal(t, 2, got)
	})

	t.Run("Expired item is a miss", func(t *testing.T) {
		cache.AddItemWithTTL("short", "x", -time.Second)
		_, ok := cache.GetItem("short")
		assert.False(t, ok)
	})
}

func TestCleanUpRemovesExpired(t *testing.T) {
	cache, err := NewInmemoryShardedCache(2, 10*time.Millisecond)
	require.NoError(t, err)
	defer cache.Stop()

	cache.AddItemWithTTL("old", "x", time.Millisecond)
	cache.AddItemWithTTL("fresh", "y", time.Hour)

	// очистка должна срабатывать многократно, а не один раз
	assert.Eventually(t, func() bool { return cache.Len() == 1 }, time.Second, 5*time.Millisecond)

	cache.AddItemWithTTL("old2", "z", time.Millisecond)
	assert.Eventually(t, func() bool { return cache.Len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	cache, err := NewInmemoryShardedCache(1, time.Millisecond)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		cache.Stop()
		cache.Stop()
	})
}

func TestCacheAdapter(t *testing.T) {
	ctx := context.Background()
	cache, err := NewInmemoryShardedCache(4, 0)
	require.NoError(t, err)
	adapter := NewCacheAdapter(cache)
	defer adapter.Close()

	_, err = adapter.GetBytes(ctx, "missing")
	assert.ErrorIs(t, err, global_cache.ErrCacheMiss)

	buf := []byte(`{"id":1}`)
	require.NoError(t, adapter.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'X'

	got, err := adapter.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(got))

	ok, err := adapter.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, adapter.Delete(ctx, "k"))
	ok, _ = adapter.Exists(ctx, "k")
	assert.False(t, ok)
}

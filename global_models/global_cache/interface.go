package global_cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается из GetBytes, когда ключа нет или он протух
var ErrCacheMiss = errors.New("cache miss")

// Cache - абстракция key-value хранилища для кэша ответов backend API.
// Реализации: Redis и шардированный кэш в памяти процесса.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Управление соединением
	Close() error
}

// Package cache определяет интерфейс кэша.
package cache

import (
	"context"
	"time"
)

// Cache - строковый кэш с TTL. Get возвращает "", nil для отсутствующего ключа.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}

// Package cache определяет порт кэша.
package cache

import (
	"context"
	"time"
)

// Cache - строковый кэш с TTL. Отсутствие ключа не является ошибкой: Get возвращает ("", false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}

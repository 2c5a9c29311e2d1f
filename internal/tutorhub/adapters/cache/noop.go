package cache

import (
	"context"
	"time"
)

// NoopCache используется, когда Redis отключен: каждое чтение - промах.
type NoopCache struct{}

// NewNoopCache создает пустой кэш.
func NewNoopCache() NoopCache {
	return NoopCache{}
}

// Get всегда возвращает промах.
func (NoopCache) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

// Set ничего не сохраняет.
func (NoopCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}

// Delete ничего не делает.
func (NoopCache) Delete(context.Context, string) error {
	return nil
}

// Close ничего не делает.
func (NoopCache) Close() error {
	return nil
}

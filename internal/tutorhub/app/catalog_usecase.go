package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/metrics"
	"tutorhub/internal/tutorhub/ports/cache"
	"tutorhub/internal/tutorhub/ports/repositories"
	"tutorhub/internal/tutorhub/resilience"
	"tutorhub/pkg/logger"
)

// Ключи кэша каталога.
const (
	CacheKeyCourses = "catalog:courses"
	CacheKeyTutors  = "catalog:tutors"
)

const (
	msgCacheUnavailable = "catalog cache unavailable, reading from database"
	msgCacheCorrupted   = "catalog cache entry could not be decoded"
	msgCacheWriteFailed = "failed to store catalog entry in cache"
	msgErrLoadCatalog   = "failed to load catalog"

	errCtxLoadingCatalog = "loading catalog"
	errCtxHealthCheck    = "checking database health"
)

// CatalogUseCaseImpl реализует api.CatalogUseCase с кэшированием на чтение.
type CatalogUseCaseImpl struct {
	repo    repositories.CatalogRepository
	cache   cache.Cache
	breaker *resilience.CircuitBreaker
	ttl     time.Duration
}

// NewCatalogUseCase создает сервис каталога. Ошибки кэша никогда не проваливают запрос.
func NewCatalogUseCase(
	repo repositories.CatalogRepository,
	c cache.Cache,
	breaker *resilience.CircuitBreaker,
	ttl time.Duration,
) *CatalogUseCaseImpl {
	return &CatalogUseCaseImpl{
		repo:    repo,
		cache:   c,
		breaker: breaker,
		ttl:     ttl,
	}
}

// CourseSummaries возвращает сводки курсов.
func (c *CatalogUseCaseImpl) CourseSummaries(ctx context.Context) ([]entities.CourseSummary, error) {
	return readThrough(ctx, c, CacheKeyCourses, c.repo.CourseSummaries)
}

// TutorSummaries возвращает сводки преподавателей.
func (c *CatalogUseCaseImpl) TutorSummaries(ctx context.Context) ([]entities.TutorSummary, error) {
	return readThrough(ctx, c, CacheKeyTutors, c.repo.TutorSummaries)
}

// Health проверяет доступность базы данных.
func (c *CatalogUseCaseImpl) Health(ctx context.Context) error {
	if err := c.repo.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxHealthCheck, err)
	}
	return nil
}

type cacheEntry struct {
	value string
	found bool
}

func readThrough[T any](
	ctx context.Context,
	c *CatalogUseCaseImpl,
	key string,
	load func(context.Context) ([]T, error),
) ([]T, error) {
	log := logger.Log(ctx).With(zap.String("method", "readThrough"), zap.String("key", key))

	entry, err := resilience.Call(ctx, c.breaker, func() (cacheEntry, error) {
		value, found, err := c.cache.Get(ctx, key)
		return cacheEntry{value: value, found: found}, err
	})
	switch {
	case err != nil:
		log.Warn(ctx, msgCacheUnavailable, zap.Error(err))
		metrics.RecordCacheLookup(key, metrics.CacheError)
	case entry.found:
		var cached []T
		if err := json.Unmarshal([]byte(entry.value), &cached); err == nil {
			metrics.RecordCacheLookup(key, metrics.CacheHit)
			return cached, nil
		}
		log.Warn(ctx, msgCacheCorrupted)
		metrics.RecordCacheLookup(key, metrics.CacheError)
	default:
		metrics.RecordCacheLookup(key, metrics.CacheMiss)
	}

	items, err := load(ctx)
	if err != nil {
		log.Error(ctx, msgErrLoadCatalog, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingCatalog, err)
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
		return items, nil
	}

	if err := c.breaker.Execute(ctx, func() error {
		return c.cache.Set(ctx, key, string(encoded), c.ttl)
	}); err != nil {
		log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
	}

	return items, nil
}

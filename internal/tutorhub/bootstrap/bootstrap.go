// Package bootstrap собирает зависимости сервиса tutorhub в готовое HTTP приложение.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/adapters/cache"
	httpadapter "tutorhub/internal/tutorhub/adapters/http"
	"tutorhub/internal/tutorhub/adapters/http/auth"
	"tutorhub/internal/tutorhub/adapters/postgres"
	"tutorhub/internal/tutorhub/adapters/services"
	"tutorhub/internal/tutorhub/app"
	"tutorhub/internal/tutorhub/config"
	"tutorhub/internal/tutorhub/db"
	"tutorhub/internal/tutorhub/metrics"
	portcache "tutorhub/internal/tutorhub/ports/cache"
	"tutorhub/internal/tutorhub/resilience"
	"tutorhub/pkg/logger"
	redisclient "tutorhub/pkg/db/redis"
	"tutorhub/pkg/reporting"
	"tutorhub/pkg/shutdown"
)

// Константы для сообщений инициализации.
const (
	LogInitReporting  = "initializing error reporting"
	LogInitServices   = "initializing token and password services"
	LogInitDatabase   = "initializing database"
	LogInitCache      = "initializing cache"
	LogCacheDisabled  = "redis cache disabled, using no-op cache"
	LogCacheFallback  = "redis unavailable, using no-op cache"
	LogInitHTTPServer = "initializing HTTP server"

	ErrInitReporting = "failed to initialize error reporting"
	ErrInitServices  = "failed to initialize services"
	ErrInitDatabase  = "failed to initialize database"

	cacheBreakerName = "catalog-cache"
)

// Runtime - собранное приложение и хуки освобождения ресурсов.
type Runtime struct {
	App      *fiber.App
	Registry *prometheus.Registry
	hooks    []shutdown.Hook
}

// Hooks возвращает хуки для shutdown.Wait.
func (r *Runtime) Hooks() []shutdown.Hook {
	return r.hooks
}

// Close последовательно выполняет хуки и объединяет их ошибки.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	for _, hook := range r.hooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build проверяет конфигурацию токенов, подключается к базе данных и кэшу и настраивает маршруты.
// Ошибка конфигурации токенов оборачивает domain services.ErrMisconfiguration.
func Build(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	log := logger.Log(ctx).With(zap.String("component", "bootstrap"))

	log.Info(ctx, LogInitReporting)
	if err := reporting.Init(cfg.Sentry.Options()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitReporting, err)
	}

	log.Info(ctx, LogInitServices)
	serviceFactory, err := services.NewServiceFactory(cfg.JWT.ToDomain(), cfg.JWT.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitServices, err)
	}

	log.Info(ctx, LogInitDatabase)
	database, err := db.New(ctx, &cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitDatabase, err)
	}

	runtime := &Runtime{}
	runtime.hooks = append(runtime.hooks, func(ctx context.Context) error {
		log.Info(ctx, "closing database")
		database.Close(ctx)
		return nil
	})

	catalogCache := newCache(ctx, log, &cfg.Redis)
	runtime.hooks = append(runtime.hooks, func(ctx context.Context) error {
		log.Info(ctx, "closing cache")
		return catalogCache.Close()
	})

	repoFactory := postgres.NewRepositoryFactory(database.Pool())

	breaker := resilience.NewCircuitBreaker(cacheBreakerName, resilience.DefaultCircuitBreakerConfig(),
		resilience.WithStateChange(func(name string, state resilience.CircuitState) {
			metrics.SetCircuitState(name, int(state))
		}))

	authUseCase := app.NewAuthUseCase(repoFactory.UserRepository(),
		serviceFactory.PasswordService(), serviceFactory.TokenService())
	sessionUseCase := app.NewSessionUseCase(repoFactory.UserRepository(), serviceFactory.TokenService())
	catalogUseCase := app.NewCatalogUseCase(repoFactory.CatalogRepository(), catalogCache, breaker, cfg.Redis.CacheTTL)

	log.Info(ctx, LogInitHTTPServer)
	runtime.Registry = metrics.NewRegistry()
	runtime.App = httpadapter.NewApp(httpadapter.AppConfig{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	})
	httpadapter.SetupRouter(runtime.App, httpadapter.RouterDeps{
		Auth:     authUseCase,
		Sessions: sessionUseCase,
		Catalog:  catalogUseCase,
		Metrics:  runtime.Registry,
		Cookie:   auth.CookieOptions{Secure: cfg.HTTP.SecureCookie},
	})

	runtime.hooks = append(runtime.hooks, func(context.Context) error {
		reporting.Flush()
		return nil
	})

	return runtime, nil
}

// newCache подключается к Redis, если он включен. Недоступный Redis не мешает старту.
func newCache(ctx context.Context, log *logger.Logger, cfg *config.RedisConfig) portcache.Cache {
	if !cfg.Enabled {
		log.Info(ctx, LogCacheDisabled)
		return cache.NewNoopCache()
	}

	log.Info(ctx, LogInitCache, zap.String("addr", cfg.ClientConfig().Addr()))
	client, err := redisclient.NewClient(ctx, cfg.ClientConfig())
	if err != nil {
		log.Warn(ctx, LogCacheFallback, zap.Error(err))
		return cache.NewNoopCache()
	}

	return cache.NewRedisCache(client, cfg.KeyPrefix, cfg.CacheTTL)
}

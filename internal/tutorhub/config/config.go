// Package config содержит конфигурацию сервиса tutorhub.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/domain/services"
	pkgconfig "tutorhub/pkg/config"
	"tutorhub/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "tutorhub"

	LogConfigLoaded       = "configuration loaded successfully"
	ErrFailedLoadConfig   = "failed to load configuration"
	ErrInvalidConfigValue = "invalid configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres PostgresConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Shutdown ShutdownConfig
	Sentry   SentryConfig
}

// Load загружает конфигурацию из окружения и необязательного .env файла и проверяет ее.
func Load(ctx context.Context, envFile string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Log(ctx).Error(ctx, ErrInvalidConfigValue, zap.Error(err))
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.Bool("postgres_url_set", cfg.Postgres.URL != ""),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.String("jwt_algorithm", cfg.JWT.Algorithm),
		zap.Duration("jwt_access_ttl", cfg.JWT.AccessTokenTTL),
		zap.Duration("jwt_refresh_ttl", cfg.JWT.RefreshTokenTTL),
		zap.String("http_address", cfg.HTTP.Address()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}

// Validate проверяет значения, без которых сервис не должен стартовать.
// Ошибки конфигурации токенов оборачивают services.ErrMisconfiguration.
func (c *Config) Validate() error {
	var errs []error

	if err := c.JWT.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Postgres.MinConn < 0 || c.Postgres.MaxConn < 1 || c.Postgres.MinConn > c.Postgres.MaxConn {
		errs = append(errs, fmt.Errorf("%s: postgres pool bounds %d..%d",
			ErrInvalidConfigValue, c.Postgres.MinConn, c.Postgres.MaxConn))
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s: http port %d", ErrInvalidConfigValue, c.HTTP.Port))
	}

	return errors.Join(errs...)
}

func misconfigured(format string, args ...any) error {
	return fmt.Errorf("%w: %s", services.ErrMisconfiguration, fmt.Sprintf(format, args...))
}

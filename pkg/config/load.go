// Package config предоставляет загрузку конфигурации из переменных окружения
// с необязательным .env файлом.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tutorhub/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgDotEnvLoaded            = "environment file loaded"
	msgDotEnvMissing           = "environment file not found, using process environment"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadDotEnv        = "failed to load environment file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T из окружения.
// Если envFile не пуст, переменные из него подгружаются до чтения;
// уже заданные переменные окружения не перезаписываются.
func Load[T any](ctx context.Context, serviceName, envFile string) (*T, error) {
	log := logger.Log(ctx)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, envFile))

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Error(ctx, errFailedLoadDotEnv, zap.String(attrPath, envFile), zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errFailedLoadDotEnv, err)
			}
			log.Debug(ctx, msgDotEnvMissing, zap.String(attrPath, envFile))
		} else {
			log.Debug(ctx, msgDotEnvLoaded, zap.String(attrPath, envFile))
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, msgFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))

	return &cfg, nil
}

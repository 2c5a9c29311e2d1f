// Package db подключает сервис к PostgreSQL и применяет встроенные миграции.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/config"
	"tutorhub/internal/tutorhub/resilience"
	"tutorhub/migrations"
	"tutorhub/pkg/db/postgres"
	"tutorhub/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing tutorhub database"
	LogDBInitialized     = "tutorhub database initialized successfully"
	LogMigrationStarting = "starting database migrations"
	LogMigrationSkipped  = "database migrations disabled"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply tutorhub database migrations"
	ErrDBConnection = "failed to connect to tutorhub database"
)

// DB представляет соединение с базой данных tutorhub.
type DB struct {
	database *postgres.Database
}

// New подключается к базе с повторными попытками и применяет миграции, если они включены.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.Bool("url_set", cfg.URL != ""),
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	connectionURL := cfg.GetConnectionURL()

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.ConnectAttempts
	retryCfg.ShouldRetry = func(err error) bool {
		return !errors.Is(err, postgres.ErrInvalidDSN) &&
			!errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded)
	}
	retry := resilience.NewRetry("postgres-connect", retryCfg)

	var database *postgres.Database
	if err := retry.Execute(ctx, func(ctx context.Context) error {
		var err error
		database, err = postgres.New(ctx, connectionURL, cfg.PoolOptions())
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	if cfg.RunMigrations {
		log.Info(ctx, LogMigrationStarting, zap.String("migrations_dir", migrations.Dir))
		if err := postgres.MigrateFS(ctx, connectionURL, migrations.FS, migrations.Dir); err != nil {
			database.Close(ctx)
			return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
		}
	} else {
		log.Info(ctx, LogMigrationSkipped)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/bootstrap"
	"tutorhub/internal/tutorhub/config"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TUTORHUB_LOGGER_MODE"
	EnvLoggerLevel = "TUTORHUB_LOGGER_LEVEL"
	EnvFile        = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrBuildRuntime         = "failed to build application"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "tutorhub service started"
	LogServiceShutdownDone = "tutorhub service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogReleasingResources  = "releasing resources"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.ParseEnvironment(os.Getenv(EnvLoggerMode))

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, EnvFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		runtime, err := bootstrap.Build(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrBuildRuntime, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.Address()))
		go func() {
			if err := runtime.App.Listen(cfg.HTTP.Address()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.Timeout,
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := runtime.App.ShutdownWithContext(ctx); err != nil {
					return fmt.Errorf("%s: %w", LogStoppingHTTP, err)
				}
				log.Info(ctx, LogReleasingResources)
				return runtime.Close(ctx)
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// Package handler - точка входа для бессерверного развертывания.
// Приложение собирается при первом запросе и переиспользуется теплыми экземплярами.
// Временная ошибка сборки повторяется на следующем запросе, ошибка конфигурации токенов остается фатальной.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/adapters/http/dto"
	"tutorhub/internal/tutorhub/bootstrap"
	"tutorhub/internal/tutorhub/config"
	"tutorhub/internal/tutorhub/domain/services"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/reporting"
)

const (
	ErrColdStart     = "failed to initialize application"
	envFile          = ".env"
	errorUnavailable = "Service Unavailable"
)

var (
	initMu   sync.Mutex
	serve    http.HandlerFunc
	fatalErr error

	buildApp = build
)

// Handler обслуживает запрос через fiber приложение.
func Handler(w http.ResponseWriter, r *http.Request) {
	h, err := handler(r.Context())
	if err != nil {
		writeUnavailable(w)
		return
	}

	h(w, r)
}

// handler возвращает собранное приложение, собирая его при необходимости.
func handler(ctx context.Context) (http.HandlerFunc, error) {
	initMu.Lock()
	defer initMu.Unlock()

	if serve != nil {
		return serve, nil
	}
	if fatalErr != nil {
		return nil, fatalErr
	}

	h, err := buildApp(context.WithoutCancel(ctx))
	if err != nil {
		if errors.Is(err, services.ErrMisconfiguration) {
			fatalErr = err
		}
		return nil, err
	}

	serve = h
	return serve, nil
}

func build(ctx context.Context) (http.HandlerFunc, error) {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrColdStart, zap.Error(err))
		return nil, err
	}

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err == nil {
		logger.SetGlobalLogger(log)
	}

	runtime, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrColdStart, zap.Error(err))
		reporting.CaptureError(ctx, err, map[string]string{"stage": "cold_start"})
		reporting.Flush()
		return nil, err
	}

	return adaptor.FiberApp(runtime.App), nil
}

func writeUnavailable(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: errorUnavailable})
}

// Package http содержит компоненты для HTTP сервера.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/adapters/http/auth"
	"tutorhub/internal/tutorhub/adapters/http/catalog"
	"tutorhub/internal/tutorhub/adapters/http/dto"
	"tutorhub/internal/tutorhub/adapters/http/middleware"
	"tutorhub/internal/tutorhub/ports/api"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/reporting"
)

// Префиксы маршрутов.
const (
	APIPrefix   = "/api"
	MetricsPath = "/metrics"

	ErrorRouteNotFound = "Route not found"
)

// AppConfig - параметры fiber приложения.
type AppConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RouterDeps - зависимости маршрутизатора.
type RouterDeps struct {
	Auth     api.AuthUseCase
	Sessions api.SessionResolver
	Catalog  api.CatalogUseCase
	Metrics  prometheus.Gatherer
	Cookie   auth.CookieOptions
}

// NewApp создает fiber приложение с JSON обработчиком ошибок.
func NewApp(cfg AppConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "tutorhub",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: ErrorHandler,
	})
}

// ErrorHandler отвечает JSON на ошибки, которые не обработали сами обработчики.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		detail = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Error(requestCtx, "unhandled error", zap.Error(err))
		reporting.CaptureError(requestCtx, err, map[string]string{
			"path":       ctx.Path(),
			"request_id": middleware.RequestID(ctx),
		})
	}

	return ctx.Status(code).JSON(dto.ErrorResponse{Detail: detail})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps RouterDeps) {
	authHandler := auth.NewHandler(deps.Auth, deps.Cookie)
	catalogHandler := catalog.NewHandler(deps.Catalog)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewMetricsMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	root := app.Group(APIPrefix)
	root.Get("/", catalogHandler.Root)
	root.Get("/health", catalogHandler.Health)
	root.Get("/courses", catalogHandler.Courses)
	root.Get("/tutors", catalogHandler.Tutors)

	if deps.Metrics != nil {
		root.Get(MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	authRoutes := root.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.NewAuthMiddleware(deps.Sessions), authHandler.Me)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Detail: ErrorRouteNotFound})
	})
}

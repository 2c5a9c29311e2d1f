package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"tutorhub/internal/tutorhub/metrics"
)

const unmatchedRoute = "unmatched"

// NewMetricsMiddleware считает запросы и их длительность по шаблону маршрута.
func NewMetricsMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fiberErr *fiber.Error
		if err != nil {
			status = fiber.StatusInternalServerError
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		route := unmatchedRoute
		if r := ctx.Route(); r != nil && status != fiber.StatusNotFound {
			route = r.Path
		}

		metrics.RecordHTTPRequest(ctx.Method(), route, status, time.Since(start))
		return err
	}
}

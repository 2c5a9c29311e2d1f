// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"tutorhub/pkg/logger"
)

// Ключи и заголовки запроса.
const (
	HeaderRequestID = "X-Request-ID"
	LocalsRequestID = "requestID"
)

// NewRequestIDMiddleware присваивает запросу идентификатор из заголовка или генерирует новый.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := logger.NormalizeRequestID(ctx.Get(HeaderRequestID))

		ctx.Locals(LocalsRequestID, requestID)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором для логирования.
func RequestContext(ctx fiber.Ctx) context.Context {
	var requestCtx context.Context = ctx.Context()
	if requestID, ok := ctx.Locals(LocalsRequestID).(string); ok && requestID != "" {
		requestCtx = logger.NewRequestIDContext(requestCtx, requestID)
	}
	return requestCtx
}

// RequestID возвращает идентификатор текущего запроса.
func RequestID(ctx fiber.Ctx) string {
	requestID, _ := ctx.Locals(LocalsRequestID).(string)
	return requestID
}

package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/adapters/http/dto"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/reporting"
)

// NewRecoveryMiddleware перехватывает панику, отправляет ее в Sentry и отвечает 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			if r := recover(); r != nil {
				log := logger.Log(requestCtx)
				log.Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				reporting.CapturePanic(requestCtx, r, map[string]string{
					"path":       ctx.Path(),
					"request_id": RequestID(ctx),
				})

				err = ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Detail: "Internal Server Error",
				})
			}
		}()

		return ctx.Next()
	}
}

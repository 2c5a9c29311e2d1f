package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/adapters/http/dto"
	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
	"tutorhub/internal/tutorhub/ports/api"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/reporting"
)

// Константы для аутентификации.
const (
	LocalsUser        = "currentUser"
	CookieAccessToken = "access_token"

	HeaderAuthorization   = "Authorization"
	HeaderWWWAuthenticate = "WWW-Authenticate"
	bearerPrefix          = "Bearer "

	ErrorCouldNotValidate = "Could not validate credentials"
	errorInternal         = "Internal Server Error"
)

// NewAuthMiddleware требует действительный access токен из заголовка Authorization или cookie.
func NewAuthMiddleware(resolver api.SessionResolver) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		user, err := resolver.Resolve(requestCtx, ExtractToken(ctx))
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				log.Debug(requestCtx, "request not authenticated", zap.Error(err))
				return Unauthorized(ctx)
			}
			log.Error(requestCtx, "failed to resolve session", zap.Error(err))
			reporting.CaptureError(requestCtx, err, map[string]string{"middleware": "auth", "request_id": RequestID(ctx)})
			return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: errorInternal})
		}

		ctx.Locals(LocalsUser, user)
		return ctx.Next()
	}
}

// ExtractToken берет bearer токен из заголовка, а при его отсутствии из cookie.
func ExtractToken(ctx fiber.Ctx) string {
	header := ctx.Get(HeaderAuthorization)
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	if header != "" {
		return ""
	}
	return ctx.Cookies(CookieAccessToken)
}

// Unauthorized отвечает 401 с заголовком WWW-Authenticate.
func Unauthorized(ctx fiber.Ctx) error {
	ctx.Set(HeaderWWWAuthenticate, "Bearer")
	return ctx.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: ErrorCouldNotValidate})
}

// CurrentUser возвращает пользователя, определенного NewAuthMiddleware.
func CurrentUser(ctx fiber.Ctx) (*entities.User, bool) {
	user, ok := ctx.Locals(LocalsUser).(*entities.User)
	return user, ok && user != nil
}

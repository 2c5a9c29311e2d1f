// Package auth содержит HTTP обработчики входа, регистрации и сессии.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/adapters/http/dto"
	"tutorhub/internal/tutorhub/adapters/http/middleware"
	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
	"tutorhub/internal/tutorhub/ports/api"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/reporting"
)

// Константы для логирования и ответов.
const (
	LogHandlerSignup        = "auth handler: signup"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerRefreshTokens = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout        = "auth handler: logout"
	LogHandlerMe            = "auth handler: me"

	ErrorInvalidRequest          = "Invalid request body"
	ErrorSignupFieldsRequired    = "email, name, password and userType are required"
	ErrorLoginFieldsRequired     = "email, password and userType are required"
	ErrorRefreshTokenRequired    = "refresh_token is required" // #nosec G101 - not a credential
	ErrorIncorrectCredentials    = "Incorrect email or password"
	ErrorUserAlreadyExists       = "User with this email and user type already exists"
	ErrorInvalidRefreshToken     = "Invalid refresh token" // #nosec G101 - not a credential
	ErrorInternal                = "Internal Server Error"
	MessageSuccessfullyLoggedOut = "Successfully logged out"
)

// CookieOptions - параметры cookie с access токеном.
type CookieOptions struct {
	Secure bool
	Path   string
}

// Handler содержит HTTP обработчики авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	cookie      CookieOptions
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, cookie CookieOptions) *Handler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &Handler{
		authUseCase: authUseCase,
		cookie:      cookie,
	}
}

// Signup регистрирует пользователя и выдает пару токенов.
func (h *Handler) Signup(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "signup"))
	log.Info(requestCtx, LogHandlerSignup)

	var req dto.SignupRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Warn(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Name == "" || req.Password == "" || req.UserType == "" {
		return sendError(ctx, fiber.StatusBadRequest, ErrorSignupFieldsRequired)
	}

	userType, err := entities.ParseUserType(req.UserType)
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}

	pair, err := h.authUseCase.Signup(requestCtx, req.Email, req.Name, req.Password, userType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUser):
			log.Info(requestCtx, "signup rejected: duplicate user")
			return sendError(ctx, fiber.StatusConflict, ErrorUserAlreadyExists)
		case isValidationError(err):
			return sendError(ctx, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(requestCtx, ctx, "signup", err)
		}
	}

	h.setAccessCookie(ctx, pair)
	return ctx.Status(fiber.StatusCreated).JSON(dto.NewTokenResponse(pair))
}

// Login проверяет учетные данные и выдает пару токенов.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "login"))
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Warn(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" || req.UserType == "" {
		return sendError(ctx, fiber.StatusBadRequest, ErrorLoginFieldsRequired)
	}

	userType, err := entities.ParseUserType(req.UserType)
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}

	pair, err := h.authUseCase.Login(requestCtx, req.Email, req.Password, userType)
	if err != nil {
		if errors.Is(err, services.ErrAuthenticationFailed) {
			ctx.Set(middleware.HeaderWWWAuthenticate, "Bearer")
			return sendError(ctx, fiber.StatusUnauthorized, ErrorIncorrectCredentials)
		}
		return h.internalError(requestCtx, ctx, "login", err)
	}

	h.setAccessCookie(ctx, pair)
	return ctx.Status(fiber.StatusOK).JSON(dto.NewTokenResponse(pair))
}

// RefreshTokens обменивает refresh токен на новую пару.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "refresh"))
	log.Info(requestCtx, LogHandlerRefreshTokens)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Warn(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.RefreshToken == "" {
		return sendError(ctx, fiber.StatusBadRequest, ErrorRefreshTokenRequired)
	}

	pair, err := h.authUseCase.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrMalformedClaims) {
			log.Info(requestCtx, "refresh rejected", zap.Error(err))
			return sendError(ctx, fiber.StatusUnauthorized, ErrorInvalidRefreshToken)
		}
		return h.internalError(requestCtx, ctx, "refresh", err)
	}

	h.setAccessCookie(ctx, pair)
	return ctx.Status(fiber.StatusOK).JSON(dto.NewTokenResponse(pair))
}

// Logout удаляет cookie с access токеном. Выданные токены остаются действительными до истечения срока.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "logout"))
	log.Info(requestCtx, LogHandlerLogout)

	if err := h.authUseCase.Logout(requestCtx); err != nil {
		return h.internalError(requestCtx, ctx, "logout", err)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.CookieAccessToken,
		Value:    "",
		Path:     h.cookie.Path,
		Expires:  time.Unix(0, 0),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: MessageSuccessfullyLoggedOut})
}

// Me возвращает пользователя текущей сессии.
func (h *Handler) Me(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerMe)

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return middleware.Unauthorized(ctx)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewUserResponse(user))
}

func (h *Handler) setAccessCookie(ctx fiber.Ctx, pair *services.TokenPair) {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.CookieAccessToken,
		Value:    pair.AccessToken,
		Path:     h.cookie.Path,
		Expires:  pair.AccessExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) internalError(requestCtx context.Context, ctx fiber.Ctx, handler string, err error) error {
	logger.Log(requestCtx).Error(requestCtx, "failed to serve request",
		zap.String("handler", handler), zap.Error(err))
	reporting.CaptureError(requestCtx, err, map[string]string{
		"handler":    handler,
		"request_id": middleware.RequestID(ctx),
	})
	return sendError(ctx, fiber.StatusInternalServerError, ErrorInternal)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		entities.ErrInvalidEmail,
		entities.ErrEmptyName,
		entities.ErrEmptyPassword,
		entities.ErrInvalidUserType,
		entities.ErrEmptyUserTypeValue,
		services.ErrInvalidPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func sendError(ctx fiber.Ctx, status int, detail string) error {
	return ctx.Status(status).JSON(dto.ErrorResponse{Detail: detail})
}

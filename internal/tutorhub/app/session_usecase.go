package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
	"tutorhub/internal/tutorhub/ports/repositories"
	svc "tutorhub/internal/tutorhub/ports/services"
	"tutorhub/pkg/logger"
)

const (
	methodResolve = "Resolve"

	msgResolvingSession  = "resolving session"
	msgMissingToken      = "no bearer token provided"
	msgTokenNotAccepted  = "bearer token rejected"
	msgNotAccessToken    = "bearer token is not an access token"
	msgSubjectVanished   = "token subject no longer exists"
	msgSessionResolved   = "session resolved"
	msgErrLoadingSubject = "error loading token subject"

	errCtxResolvingSession = "resolving session"
)

// SessionUseCaseImpl реализует api.SessionResolver.
type SessionUseCaseImpl struct {
	userRepo repositories.UserRepository
	tokenSvc svc.TokenService
}

// NewSessionUseCase создает резолвер сессий.
func NewSessionUseCase(userRepo repositories.UserRepository, tokenSvc svc.TokenService) *SessionUseCaseImpl {
	return &SessionUseCaseImpl{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

// Resolve возвращает пользователя, которому выдан access токен.
// Любая проблема с токеном или исчезнувший пользователь дают services.ErrUnauthenticated.
func (s *SessionUseCaseImpl) Resolve(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolve))
	log.Debug(ctx, msgResolvingSession)

	if token == "" {
		log.Debug(ctx, msgMissingToken)
		return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, services.ErrUnauthenticated)
	}

	claims, err := s.tokenSvc.Verify(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenNotAccepted, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxResolvingSession, services.ErrUnauthenticated, err)
	}
	if claims.Kind != services.TokenKindAccess {
		log.Debug(ctx, msgNotAccessToken, zap.String("kind", string(claims.Kind)))
		return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, services.ErrUnauthenticated)
	}
	if !claims.Identity.Complete() {
		log.Debug(ctx, msgTokenNotAccepted)
		return nil, fmt.Errorf("%s: %w: %w", errCtxResolvingSession, services.ErrUnauthenticated, services.ErrMalformedClaims)
	}

	user, err := s.userRepo.FindOne(ctx, claims.Identity.Email, claims.Identity.UserType)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgSubjectVanished, zap.String("email", claims.Identity.Email))
			return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, services.ErrUnauthenticated)
		}
		log.Error(ctx, msgErrLoadingSubject, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, err)
	}

	log.Debug(ctx, msgSessionResolved, zap.String("userID", user.ID))
	return user, nil
}

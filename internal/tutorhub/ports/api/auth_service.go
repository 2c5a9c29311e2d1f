// Package api определяет входные порты, которые используют HTTP обработчики.
package api

import (
	"context"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
)

// AuthUseCase - вход, регистрация, выход и обновление токенов.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string, userType entities.UserType) (*services.TokenPair, error)

	Signup(ctx context.Context, email, name, password string, userType entities.UserType) (*services.TokenPair, error)

	Logout(ctx context.Context) error

	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// SessionResolver определяет пользователя по bearer токену.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entities.User, error)
}

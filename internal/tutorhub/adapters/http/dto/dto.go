// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"time"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
)

// SignupRequest - тело запроса регистрации.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// LoginRequest - тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// RefreshRequest - тело запроса обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse - пара токенов в ответе.
type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// NewTokenResponse преобразует пару токенов в ответ.
func NewTokenResponse(pair *services.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        pair.TokenType,
		ExpiresAt:        pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

// UserResponse - текущий пользователь.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
}

// NewUserResponse преобразует пользователя в ответ без хэша пароля.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		UserType: user.UserType.String(),
	}
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse - тело ответа с сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

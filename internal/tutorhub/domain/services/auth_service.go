// Package services содержит доменные типы и ошибки аутентификации.
package services

import (
	"errors"
	"time"

	"tutorhub/internal/tutorhub/domain/entities"
)

// Ошибки аутентификации. Обработчики отображают их на статусы транспорта.
var (
	ErrAuthenticationFailed = errors.New("incorrect email or password")
	ErrDuplicateUser        = errors.New("user with this email and user type already exists")
	ErrUnauthenticated      = errors.New("could not validate credentials")
)

// TokenTypeBearer - тип токена в ответах клиенту.
const TokenTypeBearer = "bearer"

// Identity - утверждения об идентичности, которые несет токен.
type Identity struct {
	Email    string
	UserType entities.UserType
}

// Complete сообщает, заполнены ли оба поля.
func (i Identity) Complete() bool {
	return i.Email != "" && i.UserType.Valid()
}

// TokenPair - пара токенов, выдаваемая при входе, регистрации и обновлении.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	TokenType        string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

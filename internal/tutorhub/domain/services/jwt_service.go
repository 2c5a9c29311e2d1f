package services

import (
	"errors"
	"time"
)

// Ошибки токенов.
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrMalformedClaims  = errors.New("token claims are malformed")
	ErrMisconfiguration = errors.New("token service misconfigured")
)

// TokenKind различает access и refresh токены.
type TokenKind string

// Виды токенов.
const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Valid сообщает, известен ли вид токена.
func (k TokenKind) Valid() bool {
	return k == TokenKindAccess || k == TokenKindRefresh
}

// JWTConfig содержит неизменяемые после старта настройки подписи.
type JWTConfig struct {
	SecretKey       []byte
	Algorithm       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// TokenClaims - проверенное содержимое токена.
type TokenClaims struct {
	Identity  Identity
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

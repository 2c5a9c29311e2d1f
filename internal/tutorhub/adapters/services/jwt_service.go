package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
	"tutorhub/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssueAccess  = "IssueAccess"
	methodIssueRefresh = "IssueRefresh"
	methodVerify       = "Verify"
	methodRefresh      = "Refresh"

	msgIssuingToken     = "issuing token"
	msgTokenIssued      = "token issued"
	msgVerifyingToken   = "verifying token"
	msgTokenVerified    = "token verified"
	msgTokenExpired     = "token has expired"
	msgTokenRejected    = "token rejected"
	msgUnknownTokenKind = "unknown token type"
	msgMalformedClaims  = "token claims are incomplete"
	msgWrongTokenKind   = "refresh requested with non-refresh token"
	msgTokensRefreshed  = "token pair refreshed"

	errServiceNotConfigured = "token service used without configuration"

	//nolint:gosec
	errSigningToken         = "error signing token"
	errCtxIssuingToken      = "issuing token"
	errCtxVerifyingToken    = "verifying token"
	errCtxRefreshingTokens  = "refreshing tokens"
	errCtxValidatingConfig  = "validating token configuration"
	defaultSigningAlgorithm = "HS256"
)

// Claims - представление claims в формате библиотеки JWT.
type Claims struct {
	Email    string `json:"email,omitempty"`
	UserType string `json:"userType,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// Option настраивает ServiceJWT.
type Option func(*ServiceJWT)

// WithClock подменяет источник времени для выпуска и проверки.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceJWT) {
		if now != nil {
			s.now = now
		}
	}
}

// ServiceJWT реализует TokenService поверх HMAC JWT.
type ServiceJWT struct {
	config services.JWTConfig
	method jwt.SigningMethod
	now    func() time.Time
}

// NewJWT проверяет конфигурацию и создает сервис токенов.
// Ошибка всегда оборачивает services.ErrMisconfiguration.
func NewJWT(cfg services.JWTConfig, opts ...Option) (*ServiceJWT, error) {
	method, err := resolveSigningMethod(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingConfig, err)
	}

	s := &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:       append([]byte(nil), cfg.SecretKey...),
			Algorithm:       method.Alg(),
			AccessTokenTTL:  cfg.AccessTokenTTL,
			RefreshTokenTTL: cfg.RefreshTokenTTL,
		},
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func resolveSigningMethod(cfg services.JWTConfig) (jwt.SigningMethod, error) {
	if len(cfg.SecretKey) == 0 {
		return nil, fmt.Errorf("%w: empty secret key", services.ErrMisconfiguration)
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("%w: token TTLs must be positive", services.ErrMisconfiguration)
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = defaultSigningAlgorithm
	}

	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported signing algorithm %q", services.ErrMisconfiguration, alg)
	}
	return method, nil
}

// IssueAccess выпускает короткоживущий access токен.
func (s *ServiceJWT) IssueAccess(ctx context.Context, identity services.Identity) (string, time.Time, error) {
	return s.issue(ctx, methodIssueAccess, identity, services.TokenKindAccess, s.config.AccessTokenTTL)
}

// IssueRefresh выпускает refresh токен.
func (s *ServiceJWT) IssueRefresh(ctx context.Context, identity services.Identity) (string, time.Time, error) {
	return s.issue(ctx, methodIssueRefresh, identity, services.TokenKindRefresh, s.config.RefreshTokenTTL)
}

// IssuePair выпускает access и refresh токены для одной идентичности.
func (s *ServiceJWT) IssuePair(ctx context.Context, identity services.Identity) (*services.TokenPair, error) {
	access, accessExpires, err := s.IssueAccess(ctx, identity)
	if err != nil {
		return nil, err
	}

	refresh, refreshExpires, err := s.IssueRefresh(ctx, identity)
	if err != nil {
		return nil, err
	}

	return &services.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        services.TokenTypeBearer,
		AccessExpiresAt:  accessExpires,
		RefreshExpiresAt: refreshExpires,
	}, nil
}

func (s *ServiceJWT) issue(
	ctx context.Context,
	method string,
	identity services.Identity,
	kind services.TokenKind,
	ttl time.Duration,
) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", method),
		zap.String("email", identity.Email),
		zap.String("userType", identity.UserType.String()),
	)
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 || s.method == nil {
		log.Error(ctx, errServiceNotConfigured)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxIssuingToken, services.ErrMisconfiguration)
	}
	if !identity.Complete() {
		log.Error(ctx, msgMalformedClaims)
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxIssuingToken, services.ErrMalformedClaims)
	}

	now := s.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Email:    identity.Email,
		UserType: identity.UserType.String(),
		Type:     string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrMisconfiguration, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.String("kind", string(kind)), zap.Time("expiresAt", expiresAt))
	return signed, expiresAt, nil
}

// Verify проверяет подпись, алгоритм и срок действия токена.
// Просроченный и поврежденный токены неразличимы: оба дают ErrInvalidToken.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (*services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgVerifyingToken)

	if s.method == nil || len(s.config.SecretKey) == 0 {
		log.Error(ctx, errServiceNotConfigured)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrMisconfiguration)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.config.SecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
		} else {
			log.Debug(ctx, msgTokenRejected, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrInvalidToken, err)
	}
	if !token.Valid {
		log.Debug(ctx, msgTokenRejected)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidToken)
	}

	kind := services.TokenKind(claims.Type)
	if !kind.Valid() {
		log.Debug(ctx, msgUnknownTokenKind, zap.String("type", claims.Type))
		return nil, fmt.Errorf("%s: %w: unknown token type %q", errCtxVerifyingToken, services.ErrInvalidToken, claims.Type)
	}

	if claims.Email == "" {
		log.Debug(ctx, msgMalformedClaims, zap.String("missing", "email"))
		return nil, fmt.Errorf("%s: %w: empty email", errCtxVerifyingToken, services.ErrMalformedClaims)
	}
	userType, err := entities.ParseUserType(claims.UserType)
	if err != nil {
		log.Debug(ctx, msgMalformedClaims, zap.String("missing", "userType"))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrMalformedClaims, err)
	}

	result := &services.TokenClaims{
		Identity: services.Identity{Email: claims.Email, UserType: userType},
		Kind:     kind,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	log.Debug(ctx, msgTokenVerified, zap.String("kind", string(kind)))
	return result, nil
}

// Refresh выпускает новую пару по действующему refresh токену.
func (s *ServiceJWT) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))

	claims, err := s.Verify(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrMisconfiguration) {
			return nil, fmt.Errorf("%s: %w", errCtxRefreshingTokens, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxRefreshingTokens, services.ErrInvalidToken, err)
	}

	if claims.Kind != services.TokenKindRefresh {
		log.Debug(ctx, msgWrongTokenKind, zap.String("kind", string(claims.Kind)))
		return nil, fmt.Errorf("%s: %w: expected refresh token", errCtxRefreshingTokens, services.ErrInvalidToken)
	}

	pair, err := s.IssuePair(ctx, claims.Identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRefreshingTokens, err)
	}

	log.Debug(ctx, msgTokensRefreshed, zap.String("email", claims.Identity.Email))
	return pair, nil
}

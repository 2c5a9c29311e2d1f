package config

import (
	"time"

	"tutorhub/internal/tutorhub/domain/services"
)

// JWTConfig содержит настройки токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey       string        `env:"TUTORHUB_JWT_SECRET_KEY,JWT_SECRET_KEY" env-required:"true"`
	Algorithm       string        `env:"TUTORHUB_JWT_ALGORITHM" env-default:"HS256"`
	AccessTokenTTL  time.Duration `env:"TUTORHUB_JWT_ACCESS_TOKEN_TTL" env-default:"30m"`
	RefreshTokenTTL time.Duration `env:"TUTORHUB_JWT_REFRESH_TOKEN_TTL" env-default:"168h"`
	BCryptCost      int           `env:"TUTORHUB_BCRYPT_COST" env-default:"10"`
}

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Validate проверяет настройки подписи.
func (c *JWTConfig) Validate() error {
	if c.SecretKey == "" {
		return misconfigured("empty jwt secret key")
	}
	if _, ok := supportedAlgorithms[c.Algorithm]; !ok {
		return misconfigured("unsupported jwt algorithm %q", c.Algorithm)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return misconfigured("token ttl must be positive")
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return misconfigured("refresh ttl %s is shorter than access ttl %s", c.RefreshTokenTTL, c.AccessTokenTTL)
	}
	return nil
}

// ToDomain возвращает настройки для сервиса токенов.
func (c *JWTConfig) ToDomain() services.JWTConfig {
	return services.JWTConfig{
		SecretKey:       []byte(c.SecretKey),
		Algorithm:       c.Algorithm,
		AccessTokenTTL:  c.AccessTokenTTL,
		RefreshTokenTTL: c.RefreshTokenTTL,
	}
}

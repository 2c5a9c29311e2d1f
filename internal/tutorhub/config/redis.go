package config

import (
	"time"

	redisclient "tutorhub/pkg/db/redis"
)

// RedisConfig содержит настройки кэша каталога. При Enabled=false кэш не используется.
type RedisConfig struct {
	Enabled   bool          `env:"TUTORHUB_REDIS_ENABLED" env-default:"false"`
	Host      string        `env:"TUTORHUB_REDIS_HOST" env-default:"localhost"`
	Port      int           `env:"TUTORHUB_REDIS_PORT" env-default:"6379"`
	Password  string        `env:"TUTORHUB_REDIS_PASSWORD" env-default:""`
	DB        int           `env:"TUTORHUB_REDIS_DB" env-default:"0"`
	PoolSize  int           `env:"TUTORHUB_REDIS_POOL_SIZE" env-default:"10"`
	Timeout   time.Duration `env:"TUTORHUB_REDIS_TIMEOUT" env-default:"500ms"`
	CacheTTL  time.Duration `env:"TUTORHUB_REDIS_CACHE_TTL" env-default:"60s"`
	KeyPrefix string        `env:"TUTORHUB_REDIS_KEY_PREFIX" env-default:"tutorhub:"`
}

// ClientConfig возвращает настройки клиента Redis.
func (r *RedisConfig) ClientConfig() *redisclient.Config {
	return &redisclient.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}

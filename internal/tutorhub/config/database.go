package config

import (
	"fmt"
	"net/url"
	"time"

	"tutorhub/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
// URL из DATABASE_URL имеет приоритет над отдельными параметрами.
type PostgresConfig struct {
	URL             string        `env:"TUTORHUB_DATABASE_URL,DATABASE_URL"`
	Host            string        `env:"TUTORHUB_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `env:"TUTORHUB_POSTGRES_PORT" env-default:"5432"`
	User            string        `env:"TUTORHUB_POSTGRES_USER,DATABASE_USERNAME" env-default:"postgres"`
	Password        string        `env:"TUTORHUB_POSTGRES_PASSWORD,DATABASE_PASSWORD" env-default:"postgres"`
	Database        string        `env:"TUTORHUB_POSTGRES_DB,DATABASE_NAME" env-default:"tutorhub"`
	SSLMode         string        `env:"TUTORHUB_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn         int           `env:"TUTORHUB_POSTGRES_MIN_CONN" env-default:"0"`
	MaxConn         int           `env:"TUTORHUB_POSTGRES_MAX_CONN" env-default:"5"`
	MaxConnLifetime time.Duration `env:"TUTORHUB_POSTGRES_MAX_CONN_LIFETIME" env-default:"30m"`
	MaxConnIdleTime time.Duration `env:"TUTORHUB_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"5m"`
	ConnectAttempts int           `env:"TUTORHUB_POSTGRES_CONNECT_ATTEMPTS" env-default:"3"`
	RunMigrations   bool          `env:"TUTORHUB_POSTGRES_MIGRATE" env-default:"true"`
}

// GetConnectionURL возвращает URL подключения для пула и миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	if p.URL != "" {
		return p.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

// PoolOptions возвращает параметры пула соединений.
func (p *PostgresConfig) PoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConn:         p.MinConn,
		MaxConn:         p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
		MaxConnIdleTime: p.MaxConnIdleTime,
	}
}

package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig содержит настройки HTTP сервера.
type HTTPConfig struct {
	Host         string        `env:"TUTORHUB_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `env:"TUTORHUB_HTTP_PORT,PORT" env-default:"8000"`
	ReadTimeout  time.Duration `env:"TUTORHUB_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"TUTORHUB_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"TUTORHUB_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SecureCookie bool          `env:"TUTORHUB_HTTP_SECURE_COOKIE" env-default:"false"`
}

// Address возвращает адрес для прослушивания.
func (h *HTTPConfig) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

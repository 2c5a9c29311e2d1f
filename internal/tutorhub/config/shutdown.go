package config

import "time"

// ShutdownConfig содержит настройки для graceful shutdown.
type ShutdownConfig struct {
	Timeout time.Duration `env:"TUTORHUB_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

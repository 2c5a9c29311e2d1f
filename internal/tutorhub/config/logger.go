package config

import (
	"tutorhub/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `env:"TUTORHUB_LOGGER_LEVEL" env-default:"info"`
	Mode  string `env:"TUTORHUB_LOGGER_MODE,VERCEL_ENV" env-default:"development"`
}

// GetEnvironment получает строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	return logger.ParseEnvironment(l.Mode)
}

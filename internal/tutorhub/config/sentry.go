package config

import "tutorhub/pkg/reporting"

// SentryConfig содержит настройки отправки ошибок. Пустой DSN отключает отправку.
type SentryConfig struct {
	DSN         string `env:"TUTORHUB_SENTRY_DSN,SENTRY_DSN" env-default:""`
	Environment string `env:"TUTORHUB_SENTRY_ENVIRONMENT,VERCEL_ENV" env-default:"development"`
	Release     string `env:"TUTORHUB_SENTRY_RELEASE,VERCEL_GIT_COMMIT_SHA" env-default:""`
}

// Options возвращает параметры инициализации Sentry.
func (s *SentryConfig) Options() reporting.Options {
	return reporting.Options{
		DSN:         s.DSN,
		Environment: s.Environment,
		Release:     s.Release,
	}
}

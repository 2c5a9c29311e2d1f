// Package reporting отправляет непредвиденные ошибки и паники в Sentry.
// Без DSN все функции работают как no-op.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// Options содержит настройки отчетов об ошибках.
type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Init инициализирует клиент Sentry. Пустой DSN отключает отправку.
func Init(opts Options) error {
	if opts.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		AttachStacktrace: true,
	}); err != nil {
		return fmt.Errorf("failed to init sentry: %w", err)
	}
	return nil
}

// CaptureError отправляет ошибку с тегами запроса.
func CaptureError(_ context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

// CapturePanic отправляет значение, полученное из recover.
func CapturePanic(_ context.Context, recovered any, tags map[string]string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CurrentHub().Recover(recovered)
	})
}

// Flush дожидается отправки накопленных событий.
func Flush() {
	sentry.Flush(flushTimeout)
}

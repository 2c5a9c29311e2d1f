// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tutorhub/pkg/logger"
)

// Hook - действие, выполняемое при завершении.
type Hook func(context.Context) error

const (
	msgSignalReceived   = "shutdown signal received"
	msgShutdownTimedOut = "shutdown timed out before all hooks finished"
	msgHookFailed       = "shutdown hook failed"
)

// ErrTimeout возвращается, если хуки не уложились в отведенное время.
var ErrTimeout = errors.New("shutdown timeout exceeded")

// Wait блокируется до получения SIGINT или SIGTERM, затем выполняет хуки в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Log(ctx).Info(ctx, msgSignalReceived, zap.String("signal", sig.String()))

	_ = Run(ctx, timeout, hooks...)
}

// Run параллельно выполняет хуки и ждет их завершения не дольше timeout.
// Ошибки хуков объединяются.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, msgHookFailed, zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, msgShutdownTimedOut, zap.Duration("timeout", timeout))
		return fmt.Errorf("%w: %w", ErrTimeout, hookCtx.Err())
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

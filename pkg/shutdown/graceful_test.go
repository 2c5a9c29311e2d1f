package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tutorhub/pkg/shutdown"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	err := shutdown.Run(context.Background(), time.Second, hook, hook, hook)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRunJoinsHookErrors(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	err := shutdown.Run(context.Background(), time.Second,
		func(context.Context) error { return errFirst },
		func(context.Context) error { return nil },
		func(context.Context) error { return errSecond },
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errSecond)
}

func TestRunRespectsTimeout(t *testing.T) {
	start := time.Now()

	err := shutdown.Run(context.Background(), 50*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return nil
	})

	assert.ErrorIs(t, err, shutdown.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
	// даем хуку выйти, чтобы goleak не увидел висящую горутину
	time.Sleep(50 * time.Millisecond)
}

func TestRunIgnoresParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	var hookErr error
	err := shutdown.Run(parent, time.Second, func(ctx context.Context) error {
		hookErr = ctx.Err()
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, hookErr)
}

func TestWaitExecutesHooksOnSignal(t *testing.T) {
	hookCalled := make(chan struct{})
	waitDone := make(chan struct{})

	go func() {
		defer close(waitDone)
		shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
			close(hookCalled)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case <-hookCalled:
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not called")
	}

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return")
	}
}

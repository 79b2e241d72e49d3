package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRunWithGracefulShutdown_RunnerReturns(t *testing.T) {
	want := errors.New("runner failed")
	shutdownCalled := false

	err := RunWithGracefulShutdown(context.Background(), discardLogger(), time.Second,
		func(ctx context.Context) error { return want },
		func(ctx context.Context) error {
			shutdownCalled = true
			return nil
		},
	)

	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
	if shutdownCalled {
		t.Error("shutdown should not run when the runner exits by itself")
	}
}

func TestRunWithGracefulShutdown_ParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	shutdownCalled := make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- RunWithGracefulShutdown(ctx, discardLogger(), time.Second,
			func(ctx context.Context) error {
				close(started)
				<-ctx.Done()
				return ctx.Err()
			},
			func(ctx context.Context) error {
				shutdownCalled <- struct{}{}
				return nil
			},
		)
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunWithGracefulShutdown did not return")
	}
	select {
	case <-shutdownCalled:
	default:
		t.Error("shutdown was not called")
	}
}

func TestRunWithGracefulShutdown_Timeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	err := RunWithGracefulShutdown(ctx, discardLogger(), 50*time.Millisecond,
		func(context.Context) error {
			<-release
			return nil
		},
		nil,
	)
	if err != nil {
		t.Errorf("expected nil after timeout, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout was not honored")
	}
}

func TestContext_CancelledByParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := Context(parent)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled with its parent")
	}
}

// Package shutdown ties command lifetimes to SIGINT and SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"
)

// Context returns a context cancelled on the first SIGINT or SIGTERM. Call
// stop to release the signal handler.
func Context(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// RunWithGracefulShutdown runs runner until it returns, a signal arrives or
// ctx is cancelled. On a signal or cancellation the runner's context is
// cancelled, shutdown is called, and the runner gets up to timeout to
// return.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
	shutdown func(ctx context.Context) error,
) error {
	sigCtx, stop := Context(ctx)
	defer stop()

	// The runner is stopped only through runCancel, so a signal or a parent
	// cancellation always takes the shutdown path below.
	runCtx, runCancel := context.WithCancel(context.WithoutCancel(ctx))
	defer runCancel()

	// Channel to receive runner completion
	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	select {
	case <-sigCtx.Done():
		logger.Info("shutdown requested, stopping")
		runCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if shutdown != nil {
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown error", "error", err)
			}
		}

		// Wait for runner to complete
		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-shutdownCtx.Done():
			logger.Warn("shutdown timeout exceeded")
		}

		logger.Info("shutdown complete")
		return nil

	case err := <-runDone:
		return err
	}
}

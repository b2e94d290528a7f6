package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests get after a stop signal
const shutdownTimeout = 3 * time.Second

// Background is a long-running task tied to the server lifetime, such as the
// search index reconciler. Run returns when ctx ends.
type Background func(ctx context.Context) error

// Run serves handler on addr until SIGINT, SIGTERM or SIGQUIT arrives, or ctx ends,
// then shuts down gracefully. Background tasks share the server's lifetime.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger, tasks ...Background) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer signal.Stop(signals)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return run(ctx, signals, srv, logger, tasks)
}

func run(ctx context.Context, signals <-chan os.Signal, srv *http.Server, logger *slog.Logger, tasks []Background) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, groupCtx := errgroup.WithContext(ctx)

	logger.Info("server starting", "addr", srv.Addr)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	for _, task := range tasks {
		eg.Go(func() error {
			return task(groupCtx)
		})
	}

	eg.Go(func() error {
		defer func() {
			logger.Info("server stopping")
			cancel()

			timeCtx, timeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeCancel()

			if err := srv.Shutdown(timeCtx); err != nil {
				logger.Warn("server shutdown", "error", err)
			}
		}()

		select {
		case <-groupCtx.Done():
			return groupCtx.Err()
		case sig := <-signals:
			logger.Info("signal received", "signal", sig.String())
			return nil
		}
	})

	err := eg.Wait()
	logger.Info("server stopped")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

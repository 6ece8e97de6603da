package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/codeapi/internal/ctxlog"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 5 * time.Second

// Run serves the lookup API until ctx is cancelled, then shuts the server
// down gracefully. A non-positive port disables the server and Run returns
// immediately.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("App.Run method started.")

	if a.config.Port <= 0 {
		a.logger.Warn("Lookup server not started: disabled")
		return nil
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", a.config.Port, err)
	}
	return a.Serve(ctx, listener)
}

// Serve runs the lookup API on an existing listener until ctx is cancelled.
func (a *App) Serve(ctx context.Context, listener net.Listener) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)
	server := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("🚀 Lookup server starting", "address", listener.Addr().String(), "path", a.config.Path, "codes", a.catalog.Len())
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Lookup server failed unexpectedly", "error", err)
			return fmt.Errorf("lookup server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down lookup server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Lookup server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Lookup server shut down gracefully.")
	return nil
}

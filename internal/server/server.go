package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UnknownOlympus/athena/internal/config"
)

const monitoringTimeout = 5 * time.Second

// NewAPIServer creates the HTTP server for the employee API.
func NewAPIServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// NewMonitoringServer creates the HTTP server exposing /healthz and /metrics.
func NewMonitoringServer(addr string, log *slog.Logger, reg *prometheus.Registry, db DBPinger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/healthz", NewHealthChecker(db, log))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: monitoringTimeout,
		WriteTimeout:      monitoringTimeout,
	}
}

// Run serves srv until ctx is cancelled and then shuts it down, waiting at most shutdownTimeout
// for in-flight requests. It returns early if the listener fails.
func Run(ctx context.Context, log *slog.Logger, name string, srv *http.Server, shutdownTimeout time.Duration) error {
	log = log.With(slog.String("server", name), slog.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		log.InfoContext(ctx, "Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s server error: %w", name, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown %s server: %w", name, err)
	}

	log.InfoContext(ctx, "Server stopped")

	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/config"
	"folio/internal/middleware"
	"folio/internal/router"

	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
	evictInterval   = time.Minute
	visitorIdle     = 5 * time.Minute
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, errc := startServer(ctx, a.cfg)
			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			return shutdownServer(srv)
		},
	}
}

// startServer runs the preview server in the background. Listen failures
// arrive on the returned channel.
func startServer(ctx context.Context, cfg *config.Config) (*http.Server, <-chan error) {
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go limiter.Run(ctx, evictInterval, visitorIdle)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.New(cfg, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", srv.Addr, "site", cfg.Site.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			errc <- err
		}
	}()
	return srv, errc
}

func shutdownServer(srv *http.Server) error {
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}
	slog.Info("server exited gracefully")
	return nil
}

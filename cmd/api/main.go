// Command api serves the document summarizer web application.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"docsummarizer/internal/config"
	"docsummarizer/internal/observability/logging"
	"docsummarizer/internal/observability/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, logging.Format(cfg.Log.Format), logging.ParseLevel(cfg.Log.Level))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Tracing.Enabled {
		shutdownTracing := tracing.Setup()
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("tracer shutdown failed", slog.Any("error", err))
			}
		}()
		logger.Info("tracing enabled")
	}

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)

	srv := newServer(gctx, cfg, app.Handler)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version),
			slog.String("provider", app.Provider),
			slog.String("session_store", cfg.Session.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	for _, task := range app.Background {
		g.Go(func() error {
			task(gctx)
			return nil
		})
	}

	return g.Wait()
}

// newServer builds the HTTP server. Request contexts carry ctx's values but
// not its cancellation, so a shutdown signal lets in-flight requests finish
// within the shutdown timeout.
func newServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	base := context.WithoutCancel(ctx)
	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return base
		},
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"docsummarizer/internal/config"
	hhttp "docsummarizer/internal/handler/http"
	"docsummarizer/internal/handler/http/middleware"
	"docsummarizer/internal/handler/http/requestid"
	"docsummarizer/internal/handler/http/shell"
	"docsummarizer/internal/infra/document"
	"docsummarizer/internal/infra/extractor"
	"docsummarizer/internal/infra/summarizer"
	"docsummarizer/internal/observability/tracing"
	"docsummarizer/internal/usecase/session"
	"docsummarizer/internal/usecase/summary"
)

// app is the wired service: the root handler plus what must run beside it
// and be released after it.
type app struct {
	Handler    http.Handler
	Provider   string
	Background []func(ctx context.Context)
	closers    []func() error
}

// Close releases external connections.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			slog.Error("failed to close resource", slog.Any("error", err))
		}
	}
}

// newApp builds every component from cfg and assembles the HTTP handler.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	store, err := a.newSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := summarizer.New(ctx, cfg.SummarizerSettings())
	if err != nil {
		return nil, fmt.Errorf("summarizer: %w", err)
	}
	a.Provider = gen.Provider()

	composer, err := document.NewComposer(document.LetterGeometry())
	if err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}
	registry := extractor.NewDefaultRegistry()

	svc := &session.Service{
		Store:      store,
		Extractor:  registry,
		Summarizer: &summary.Service{Generator: gen},
		Composer:   composer,
	}

	h, err := shell.NewHandler(svc,
		shell.NewSummarizeLimiter(cfg.Summarizer.RatePerMinute),
		cfg.Upload.MaxBytes,
		registry.SupportedFormats())
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}

	mux := http.NewServeMux()
	shell.Register(mux, h, shell.SessionCookies{
		Secure: cfg.Session.CookieSecure,
		MaxAge: cfg.Session.TTL,
	})

	cspMW := middleware.NewCSPMiddleware(middleware.DefaultConfig(cfg.Security.CSPEnabled, cfg.Security.CSPReportOnly))
	if cspMW.Enabled() {
		logger.Info("CSP enabled", slog.Bool("report_only", cspMW.ReportOnly()))
	} else {
		logger.Warn("CSP is disabled")
	}

	mux.Handle("GET /health", &hhttp.HealthHandler{
		Store:         store,
		Summarizer:    gen,
		Version:       cfg.Version,
		CSPEnabled:    cspMW.Enabled(),
		CSPReportOnly: cspMW.ReportOnly(),
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: store})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	a.Handler = applyMiddleware(logger, mux, cfg.Upload.MaxBytes+shell.UploadEnvelope, cspMW)
	return a, nil
}

// newSessionStore selects the configured backend. The in-memory store
// registers its expiry sweep as a background task; Redis expires keys itself.
func (a *app) newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		store := session.NewRedisStore(client, cfg.Session.TTL)
		if err := store.Ping(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, nil
	default:
		store := session.NewMemoryStore(cfg.Session.TTL)
		interval := cfg.Session.CleanupInterval
		a.Background = append(a.Background, func(ctx context.Context) {
			store.RunCleanup(ctx, interval)
		})
		return store, nil
	}
}

// applyMiddleware wraps the mux, outermost first: request id, tracing,
// recover, logging, body limit, CSP, metrics. Tracing sits outside logging
// so request logs carry the trace ID.
func applyMiddleware(logger *slog.Logger, handler http.Handler, maxBodyBytes int64, cspMW *middleware.CSPMiddleware) http.Handler {
	chain := hhttp.MetricsMiddleware(handler)
	chain = cspMW.Middleware()(chain)
	chain = hhttp.LimitRequestBody(maxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	return requestid.Middleware(chain)
}

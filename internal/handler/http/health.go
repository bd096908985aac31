// Package http provides the HTTP middleware, health endpoints and metrics
// shared by every route of the summarizer.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// CSPHealthInfo contains health information for CSP middleware.
type CSPHealthInfo struct {
	Enabled    bool `json:"enabled"`     // Whether CSP is enabled
	ReportOnly bool `json:"report_only"` // Whether CSP is in report-only mode
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderStatus reports the state of the summarization provider.
type ProviderStatus interface {
	Provider() string
	CircuitOpen() bool
}

// HealthHandler handles health check endpoint requests.
// An unreachable session store makes the service unhealthy; an open
// summarizer circuit only degrades it.
type HealthHandler struct {
	Store      Pinger
	Summarizer ProviderStatus
	Version    string

	// CSP status (optional)
	CSPEnabled    bool
	CSPReportOnly bool
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	if h.Store != nil {
		storeCheck := h.checkStore(ctx)
		checks["session_store"] = storeCheck
		if storeCheck.Status == "unhealthy" {
			allHealthy = false
		}
	} else {
		checks["session_store"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
		allHealthy = false
	}

	if h.Summarizer != nil {
		checks["summarizer"] = h.checkSummarizer()
	}

	if h.CSPEnabled {
		checks["csp"] = h.checkCSP()
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// checkStore pings the session store.
func (h *HealthHandler) checkStore(ctx context.Context) CheckStatus {
	start := time.Now()
	if err := h.Store.Ping(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]interface{}{"latency_ms": time.Since(start).Milliseconds()},
	}
}

// checkSummarizer reports the provider and its circuit breaker state.
// An open circuit is reported as degraded: the page still works, only
// generation fails fast until the provider recovers.
func (h *HealthHandler) checkSummarizer() CheckStatus {
	open := h.Summarizer.CircuitOpen()
	details := map[string]interface{}{
		"provider":     h.Summarizer.Provider(),
		"circuit_open": open,
	}
	if open {
		return CheckStatus{
			Status:  "degraded",
			Message: "circuit breaker open",
			Details: details,
		}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: details,
	}
}

// checkCSP reports the configuration status of Content Security Policy.
func (h *HealthHandler) checkCSP() CheckStatus {
	cspInfo := CSPHealthInfo{
		Enabled:    h.CSPEnabled,
		ReportOnly: h.CSPReportOnly,
	}

	return CheckStatus{
		Status:  "healthy",
		Details: map[string]interface{}{"config": cspInfo},
	}
}

// ReadyHandler handles readiness probe requests.
// It checks that the session store can be reached.
type ReadyHandler struct {
	Store Pinger
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable if the
// session store is not reachable.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "session store not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.Store.Ping(ctx); err != nil {
		http.Error(w, "session store not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Error("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK if the application is able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}

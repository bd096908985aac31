// Package middleware holds HTTP middleware that depends on security policy
// packages.
package middleware

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"docsummarizer/pkg/security/csp"
)

// CSPMiddlewareConfig holds configuration for CSP middleware.
type CSPMiddlewareConfig struct {
	// Enabled controls whether CSP headers are applied at all.
	Enabled bool

	// DefaultPolicy applies when no entry in PathPolicies matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies. The longest matching
	// prefix wins.
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends every policy as Content-Security-Policy-Report-Only.
	ReportOnly bool
}

type renderedPolicy struct {
	prefix string
	value  string
}

// CSPMiddleware applies Content-Security-Policy headers to HTTP responses.
// Policies are rendered once at construction; the builders in the config
// are not touched afterwards.
type CSPMiddleware struct {
	enabled    bool
	headerName string
	fallback   string
	byPrefix   []renderedPolicy // longest prefix first
}

// NewCSPMiddleware renders the configured policies.
func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	m := &CSPMiddleware{
		enabled:    config.Enabled,
		headerName: csp.HeaderEnforce,
	}
	if config.ReportOnly {
		m.headerName = csp.HeaderReportOnly
	}
	if config.DefaultPolicy != nil {
		m.fallback = config.DefaultPolicy.Build()
	}
	for prefix, policy := range config.PathPolicies {
		if policy == nil {
			continue
		}
		m.byPrefix = append(m.byPrefix, renderedPolicy{prefix: prefix, value: policy.Build()})
	}
	sort.Slice(m.byPrefix, func(i, j int) bool {
		if len(m.byPrefix[i].prefix) != len(m.byPrefix[j].prefix) {
			return len(m.byPrefix[i].prefix) > len(m.byPrefix[j].prefix)
		}
		return m.byPrefix[i].prefix < m.byPrefix[j].prefix
	})
	return m
}

// Enabled reports whether the middleware sets any header.
func (m *CSPMiddleware) Enabled() bool { return m.enabled }

// ReportOnly reports whether policies are sent in report-only mode.
func (m *CSPMiddleware) ReportOnly() bool { return m.headerName == csp.HeaderReportOnly }

// Middleware returns an HTTP middleware handler that applies CSP headers.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.enabled {
				if value := m.selectPolicy(r.URL.Path); value != "" {
					w.Header().Set(m.headerName, value)
					slog.Debug("CSP header applied",
						slog.String("path", r.URL.Path),
						slog.String("header", m.headerName),
					)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy returns the rendered policy for path, or "" when none applies.
func (m *CSPMiddleware) selectPolicy(path string) string {
	for _, p := range m.byPrefix {
		if strings.HasPrefix(path, p.prefix) {
			return p.value
		}
	}
	return m.fallback
}

// DefaultConfig is the policy layout of the summarizer: the shell policy
// for pages and static assets, the strict policy for operational endpoints.
func DefaultConfig(enabled, reportOnly bool) CSPMiddlewareConfig {
	return CSPMiddlewareConfig{
		Enabled:       enabled,
		ReportOnly:    reportOnly,
		DefaultPolicy: csp.ShellPolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/health":  csp.StrictPolicy(),
			"/ready":   csp.StrictPolicy(),
			"/live":    csp.StrictPolicy(),
			"/metrics": csp.StrictPolicy(),
		},
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"docsummarizer/pkg/security/csp"
)

func serve(t *testing.T, m *CSPMiddleware, path string) *httptest.ResponseRecorder {
	t.Helper()
	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCSPMiddleware_Disabled(t *testing.T) {
	m := NewCSPMiddleware(DefaultConfig(false, false))

	rec := serve(t, m, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(csp.HeaderEnforce))
	assert.Empty(t, rec.Header().Get(csp.HeaderReportOnly))
	assert.False(t, m.Enabled())
}

func TestCSPMiddleware_DefaultConfigPolicySelection(t *testing.T) {
	m := NewCSPMiddleware(DefaultConfig(true, false))
	shell := csp.ShellPolicy().Build()
	strict := csp.StrictPolicy().Build()

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: shell},
		{path: "/summarize", want: shell},
		{path: "/summary.pdf", want: shell},
		{path: "/static/shell.js", want: shell},
		{path: "/health", want: strict},
		{path: "/ready", want: strict},
		{path: "/live", want: strict},
		{path: "/metrics", want: strict},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(t, m, tt.path)
			assert.Equal(t, tt.want, rec.Header().Get(csp.HeaderEnforce))
			assert.Empty(t, rec.Header().Get(csp.HeaderReportOnly))
		})
	}
}

func TestCSPMiddleware_ReportOnly(t *testing.T) {
	m := NewCSPMiddleware(DefaultConfig(true, true))

	rec := serve(t, m, "/health")

	assert.Empty(t, rec.Header().Get(csp.HeaderEnforce))
	assert.Equal(t, csp.StrictPolicy().Build(), rec.Header().Get(csp.HeaderReportOnly))
	assert.True(t, m.ReportOnly())
}

func TestCSPMiddleware_LongestPrefixWins(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.NewCSPBuilder().DefaultSrc("'self'"),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/static/":       csp.NewCSPBuilder().DefaultSrc("'none'"),
			"/static/fonts/": csp.NewCSPBuilder().FontSrc("'self'"),
		},
	})

	assert.Equal(t, "default-src 'none'", serve(t, m, "/static/shell.css").Header().Get(csp.HeaderEnforce))
	assert.Equal(t, "font-src 'self'", serve(t, m, "/static/fonts/a.woff2").Header().Get(csp.HeaderEnforce))
	assert.Equal(t, "default-src 'self'", serve(t, m, "/").Header().Get(csp.HeaderEnforce))
}

func TestCSPMiddleware_NoPolicyNoHeader(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.NewCSPBuilder(),
		PathPolicies:  map[string]*csp.CSPBuilder{"/x": nil},
	})

	rec := serve(t, m, "/x")

	assert.Empty(t, rec.Header().Get(csp.HeaderEnforce))
}

func TestCSPMiddleware_ConfigBuildersNotMutated(t *testing.T) {
	shared := csp.ShellPolicy()
	NewCSPMiddleware(CSPMiddlewareConfig{Enabled: true, ReportOnly: true, DefaultPolicy: shared})

	assert.Equal(t, csp.HeaderEnforce, shared.HeaderName())
}

func TestCSPMiddleware_ConcurrentRequests(t *testing.T) {
	m := NewCSPMiddleware(DefaultConfig(true, false))
	want := csp.ShellPolicy().Build()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, want, rec.Header().Get(csp.HeaderEnforce))
		}()
	}
	wg.Wait()
}

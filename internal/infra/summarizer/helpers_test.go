package summarizer_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"docsummarizer/internal/resilience/circuitbreaker"
)

type mockMetrics struct {
	mu        sync.Mutex
	lengths   []int
	durations []time.Duration
	outcomes  []string
	fallbacks []string
}

func (m *mockMetrics) RecordLength(length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lengths = append(m.lengths, length)
}

func (m *mockMetrics) RecordDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, duration)
}

func (m *mockMetrics) RecordOutcome(provider, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, provider+"/"+status)
}

func (m *mockMetrics) RecordFallback(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks = append(m.fallbacks, provider)
}

// fakeAPI serves a fixed status and body and remembers every request body.
type fakeAPI struct {
	mu     sync.Mutex
	status int
	body   string
	calls  int
	paths  []string
	bodies []string
}

func newFakeAPI(t *testing.T, status int, body string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{status: status, body: body}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		api.mu.Lock()
		api.calls++
		api.paths = append(api.paths, r.URL.Path)
		api.bodies = append(api.bodies, string(raw))
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		_, _ = w.Write([]byte(api.body))
	}))
	t.Cleanup(server.Close)
	return api, server
}

func (a *fakeAPI) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func (a *fakeAPI) lastBody() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.bodies) == 0 {
		return ""
	}
	return a.bodies[len(a.bodies)-1]
}

func (a *fakeAPI) lastPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.paths) == 0 {
		return ""
	}
	return a.paths[len(a.paths)-1]
}

// tripOnFirstFailure returns a breaker that opens after one failed call.
func tripOnFirstFailure(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:           name,
		MinRequests:    1,
		FailureRatio:   0.5,
		Window:         time.Minute,
		Cooldown:       time.Minute,
		HalfOpenProbes: 1,
	})
}

package shell

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterIdleTimeout     = 30 * time.Minute
)

// limiterEntry is the token bucket of one session.
type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// SummarizeLimiter bounds how often each session may request a summary.
// A nil *SummarizeLimiter allows everything.
type SummarizeLimiter struct {
	entries   sync.Map // map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	cleanMu   sync.Mutex
	lastClean time.Time
	now       func() time.Time
}

// NewSummarizeLimiter allows perMinute generations per session per minute,
// all of which may be spent at once. A non-positive perMinute returns nil.
func NewSummarizeLimiter(perMinute int) *SummarizeLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &SummarizeLimiter{
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		lastClean: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether the session may generate a summary now and spends a
// token when it may.
func (l *SummarizeLimiter) Allow(sessionID string) bool {
	if l == nil {
		return true
	}
	now := l.now()
	l.periodicCleanup(now)

	val, _ := l.entries.LoadOrStore(sessionID, &limiterEntry{
		limiter: rate.NewLimiter(l.limit, l.burst),
	})
	entry := val.(*limiterEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// periodicCleanup drops buckets of sessions that have been idle for a while.
func (l *SummarizeLimiter) periodicCleanup(now time.Time) {
	l.cleanMu.Lock()
	defer l.cleanMu.Unlock()

	if now.Sub(l.lastClean) < limiterCleanupInterval {
		return
	}
	l.lastClean = now
	cutoff := now.Add(-limiterIdleTimeout)

	l.entries.Range(func(key, value interface{}) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		idle := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if idle {
			l.entries.Delete(key)
		}
		return true
	})
}

// size returns the number of tracked sessions.
func (l *SummarizeLimiter) size() int {
	n := 0
	l.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

package shell

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session id.
const CookieName = "docsum_session"

type sessionIDCtxKey struct{}

// WithSessionID returns a copy of ctx carrying the session id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDCtxKey{}, id)
}

// SessionIDFromContext returns the session id stored by Sessions.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDCtxKey{}).(string)
	return id, ok && id != ""
}

// SessionCookies issues and reads the session cookie.
type SessionCookies struct {
	// Secure marks the cookie as HTTPS only.
	Secure bool

	// MaxAge is the cookie lifetime. It should match the session store TTL.
	MaxAge time.Duration
}

// Middleware puts the visitor's session id into the request context,
// issuing a new id when the cookie is missing or malformed.
func (c SessionCookies) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(CookieName); err == nil {
			if parsed, err := uuid.Parse(cookie.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   c.Secure,
				MaxAge:   int(c.MaxAge.Seconds()),
				SameSite: http.SameSiteLaxMode,
			})
			slog.DebugContext(r.Context(), "session issued", slog.String("session_id", id))
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
	})
}

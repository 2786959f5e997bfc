// Package visitor tags each browser with an anonymous id kept in a signed
// cookie. The id keys per-visitor widget state; it is not authentication.
package visitor

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	DefaultCookieName = "activityhub-visitor"

	idKey = "visitor_id"
)

type ctxKey string

const visitorIDKey ctxKey = "visitorID"

// Manager issues and reads visitor cookies.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a Manager signing cookies with key. An empty key gets a
// random one, so ids do not survive a restart.
//
// With secure=true cookies are Secure; use secure=false for local http.
func NewManager(name, key string, secure bool, logger *zap.Logger) *Manager {
	if name == "" {
		name = DefaultCookieName
	}
	secret := []byte(key)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		logger.Warn("session key not set; using an ephemeral key")
	} else if len(secret) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: name, log: logger}
}

// Middleware ensures every request carries a visitor id, issuing a cookie
// on first contact.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A tampered or stale cookie yields a fresh session and a new id.
		sess, _ := m.store.Get(r, m.name)

		id, _ := sess.Values[idKey].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[idKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Warn("failed to save visitor cookie", zap.Error(err))
			}
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

// WithID returns ctx carrying the visitor id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorIDKey, id)
}

// ID returns the visitor id set by Middleware, or "" when absent.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(visitorIDKey).(string)
	return id
}

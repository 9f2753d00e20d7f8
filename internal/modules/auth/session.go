package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// CookieName carries the session token for browsers.
	CookieName = "session"
	// TokenHeader returns a freshly issued token to non-browser clients.
	TokenHeader = "X-Session-Token"
)

type ctxKey struct{}

// WithSessionID returns a context carrying sid.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}

// SessionID returns the session id attached by Sessions, or "".
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKey{}).(string)
	return sid
}

// Sessions attaches a session id to every request. A missing or invalid token
// starts a new session and hands its token back as a cookie and a header.
func Sessions(tokens *Tokens, logger log.FieldLogger) func(http.Handler) http.Handler {
	logger = logger.WithField("component", "auth.sessions")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, err := tokens.Parse(requestToken(r))
			if err != nil {
				sid = uuid.NewString()
				signed, err := tokens.Issue(sid)
				if err != nil {
					logger.WithError(err).Error("failed to issue session token")
					httpx.Error(w, http.StatusInternalServerError, "session unavailable")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(tokens.TTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(TokenHeader, signed)
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
		})
	}
}

func requestToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireLogin rejects requests whose session is not logged in.
func RequireLogin(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !service.IsLoggedIn(r.Context(), SessionID(r.Context())) {
				httpx.Error(w, http.StatusUnauthorized, ErrLoginRequired.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

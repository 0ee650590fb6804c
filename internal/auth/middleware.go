package auth

import (
	"context"
	"net/http"

	"github.com/farhan/scribe/internal/flash"
	"github.com/farhan/scribe/internal/model"
)

// contextKey is an unexported type for context keys in this package.
// Using a package-private type means no other package can read or
// shadow the username value we store in the request context.
type contextKey string

const usernameKey contextKey = "username"

// RequireUser guards routes that mutate documents.
//
// A browser app can't just answer 401 to a human — if the session
// cookie is missing or invalid, the middleware stashes a flash and
// redirects to /login instead of running the guarded handler. The
// guarded action is never performed.
func RequireUser(sessions *SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := usernameFromCookie(r, sessions)
			if err != nil {
				flash.Set(w, model.FlashError, "You are not logged in.")
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalUser decorates the request context with the signed-in
// username when a valid session is present, and does nothing otherwise.
// Public pages use it so the layout can show "Signed in as X" without
// blocking anonymous visitors.
func OptionalUser(sessions *SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username, err := usernameFromCookie(r, sessions); err == nil && username != "" {
				ctx := context.WithValue(r.Context(), usernameKey, username)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UsernameFromContext returns the authenticated username for this
// request, or ("", false) if the request is anonymous.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

// usernameFromCookie reads and validates the session cookie.
// http.ErrNoCookie just means the visitor is anonymous.
func usernameFromCookie(r *http.Request, sessions *SessionService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return sessions.Validate(cookie.Value)
}

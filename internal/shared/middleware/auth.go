package middleware

import (
	"context"
	"net/http"

	"github.com/andrasnagy-data/authdialog/internal/shared/cookie"
	"github.com/rs/zerolog/hlog"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const sessionKey contextKey = "session"

// GetSession extracts the session from the request context.
func GetSession(ctx context.Context) (cookie.Session, bool) {
	s, ok := ctx.Value(sessionKey).(cookie.Session)
	return s, ok
}

// NewAuthMiddleware rejects requests without a valid session cookie with a JSON 401
// and adds the session to the request context for downstream handlers.
func NewAuthMiddleware(codec *cookie.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := codec.GetCookie(r)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("Rejected request without valid session")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Not logged in"}`))
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, *session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

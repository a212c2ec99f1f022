package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskhub/taskhub-go/internal/crypto"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionCookieName is the name of the HTTP-only cookie carrying the
// session token.
const SessionCookieName = "session"

// unauthenticatedMsg is the one body returned for every authentication
// failure. Missing, malformed, forged, and expired tokens all produce the
// same response so the middleware never acts as a verification oracle.
const unauthenticatedMsg = "not authorized"

// SessionAuth returns middleware that validates the session cookie and
// binds the authenticated user ID into the request context. It must wrap
// every handler that touches user-owned data.
func SessionAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, unauthenticatedMsg)
				return
			}

			claims, err := crypto.ValidateToken(cookie.Value, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, unauthenticatedMsg)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/foodbridge-app/foodbridge-backend/internal/auth"
	"github.com/foodbridge-app/foodbridge-backend/internal/models"
)

// TokenCookie is the cookie the session token travels in.
const TokenCookie = "token"

type contextKey int

const principalKey contextKey = iota

// UserLoader resolves a user id from a validated token to the current
// account record.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator gates protected routes. Missing cookie is 401; a bad
// signature, expiry, or a token whose user no longer exists is 403. On
// success the freshly loaded user is placed in the request context, so
// handlers never act on stale token snapshots.
func Authenticator(loader UserLoader, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized. No token provided.")
				return
			}

			userID, err := auth.ParseToken(cookie.Value, secret)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "Invalid or expired token.")
				return
			}

			user, err := loader.GetByID(r.Context(), userID)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Principal returns the authenticated user placed in the context by
// Authenticator.
func Principal(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

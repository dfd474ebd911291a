package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_id"

const userIDKey contextKey = "user_id"

// Sessions resolves the session cookie to a user id on every request. An
// absent, unknown or expired session leaves the request anonymous; gating
// happens in RequireAuth.
func Sessions(sessions domain.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			session, err := sessions.GetByToken(r.Context(), cookie.Value)
			if err != nil || session.Expired() {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated user, before the
// handler runs.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "unauthorized",
				"message": "authentication required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user id, or 0 when anonymous.
func UserIDFromContext(ctx context.Context) int64 {
	if v, ok := ctx.Value(userIDKey).(int64); ok {
		return v
	}
	return 0
}

// ContextWithUserID injects a user id, primarily for tests.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	if userID == 0 {
		return ctx
	}
	return context.WithValue(ctx, userIDKey, userID)
}

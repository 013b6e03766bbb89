package server

import (
	"context"
	"net/http"

	"github.com/prokopsimek/pmcrm/internal/auth"
	"github.com/prokopsimek/pmcrm/internal/domain"
)

// userContextKey identifies the authenticated user in the request context.
type userContextKey struct{}

// AuthMiddleware validates API keys and injects the resolved user into the
// request context.
func AuthMiddleware(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, err := auth.ExtractAPIKey(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			user, err := authenticator.ValidateAPIKey(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			AddLogField(r.Context(), "user_id", user.ID)

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil when the auth
// middleware did not run.
func UserFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(userContextKey{}).(*domain.User); ok {
		return user
	}
	return nil
}

// ContextWithUser injects a user into ctx. Intended for tests and internal
// callers that bypass the HTTP middleware.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is unexported so this package's context values cannot collide
// with another package's.
type contextKey string

// RequestIDKey holds the ID assigned by RequestIDMiddleware.
const RequestIDKey contextKey = "request_id"

// RequestIDMiddleware tags every request with a UUID, stored in the context
// and echoed in the X-Request-ID response header so an API error can be
// matched to its server log lines.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID, or "" outside a request context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

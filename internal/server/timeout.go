package server

import (
	"context"
	"net/http"
	"time"
)

// TimeoutMiddleware puts a deadline on every request context. The timeline
// aggregation engine imposes no deadline of its own, so this is the only
// thing that cancels a slow fan-out. Cancellation is cooperative; handlers
// and store queries observe ctx.Done() through database/sql, nothing is
// forcibly terminated.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

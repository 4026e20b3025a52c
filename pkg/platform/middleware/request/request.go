// Package request provides middleware assigning each request a correlation ID.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"worklog/pkg/requestcontext"
)

// HeaderRequestID is honored when the upstream gateway already assigned an ID.
const HeaderRequestID = "X-Request-Id"

// Middleware ensures every request carries a request ID in its context and
// echoes it back on the response for client-side correlation.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kbukum/cognito-gateway/logger"
)

// HeaderRequestID carries the request id on requests and responses.
const HeaderRequestID = "X-Request-Id"

// RequestID propagates the incoming X-Request-Id or generates one, echoes it
// on the response and stores it in the request context for log enrichment.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(logger.ContextWithRequestID(r.Context(), id)))
		})
	}
}

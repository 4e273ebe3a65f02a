package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/cognito-gateway/logger"
)

// RequestLogger logs every request with method, path, status code and
// duration. Health checks are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isHealthEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := map[string]interface{}{
				"method":             r.Method,
				"path":               r.URL.Path,
				logger.FieldStatus:   sw.status,
				logger.FieldDuration: duration.Milliseconds(),
				"client":             clientIP(r),
			}
			if duration > 500*time.Millisecond {
				fields["slow"] = true
			}

			logByStatus(log.WithContext(r.Context()), fields, sw.status)
		})
	}
}

func isHealthEndpoint(path string) bool {
	return path == "/health" || strings.HasSuffix(path, "/health")
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}

// logByStatus logs request fields at a level matching the status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Info("Request completed", fields)
	}
}

package router

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/authgate/internal/pkg/ratelimit"
)

// RateLimit throttles requests per client IP on the routes it is attached
// to. It is not part of the default chain; pass it to GET/POST for the
// endpoints that need admission control. It runs after middlewareIP so
// RemoteAddr already holds the real client address. A nil limiter disables
// throttling.
func RateLimit(limiter ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter, err := limiter.Allow(r.Context(), r.RemoteAddr)
			if err != nil {
				// Fail open, a broken limiter store should not take auth down.
				slog.WarnContext(r.Context(), "rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				if secs := int(retryAfter.Seconds()); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				writeJSON(w, errorResponse{Message: "too many requests, please try again later"}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

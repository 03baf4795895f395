package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	h "eventhub/internal/delivery/http/helpers"
)

// RateLimitByIP limits each client IP to limit requests per window.
// A non-positive limit disables limiting.
func RateLimitByIP(limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if limit <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	limiter := httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "rate limit exceeded")
		}),
	)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return limiter(next).ServeHTTP
	}
}

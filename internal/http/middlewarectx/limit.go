// Package middlewarectx holds the router middleware shared by the API
// endpoints.
package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

// Sized for a single mobile-app backend instance; webhook callbacks
// are mounted outside the limited group.
const (
	requestsPerSecond = 20
	burstSize         = 40
)

var limiter = rate.NewLimiter(requestsPerSecond, burstSize)

// RateLimitMiddleware rejects requests above the global rate with 429.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

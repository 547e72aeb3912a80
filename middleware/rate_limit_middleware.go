package middleware

import (
	"golang.org/x/time/rate"

	"github.com/ozroc/potp-go/potperr"
)

// RateLimitMiddleware creates a rate limiter using the token bucket
// algorithm: tokens refill at r per second up to burst, and each request
// consumes one. Unlike a leaky bucket this tolerates short bursts, which
// suits ad-hoc avatar invocation traffic better than a constant drain rate.
//
// The limiter is created in the outer closure (once per middleware
// construction), not inside the returned handler — a fresh limiter per
// request would give every request a full bucket and defeat the purpose.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(handlerID string, req []byte) ([]byte, error) {
			if !limiter.Allow() {
				return nil, potperr.New(potperr.RateLimited, "rate limit exceeded for handler %q", handlerID)
			}
			return next(handlerID, req)
		}
	}
}

package middleware

import (
	"time"

	"github.com/ozroc/potp-go/potplog"
)

// LoggingMiddleware records the handler ID, duration, and any error for
// each dispatched request. It captures the start time before calling
// next and logs the elapsed time after next returns.
func LoggingMiddleware(logger *potplog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(handlerID string, req []byte) ([]byte, error) {
			start := time.Now()

			ret, err := next(handlerID, req)

			duration := time.Since(start)
			logger.Info("handler=%s duration=%s", handlerID, duration)
			if err != nil {
				logger.Warn("handler=%s error=%s", handlerID, err)
			}
			return ret, err
		}
	}
}

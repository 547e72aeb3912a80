package middleware

import (
	"context"
	"time"

	"github.com/ozroc/potp-go/potperr"
)

type timeoutResult struct {
	ret []byte
	err error
}

// TimeoutMiddleware enforces a maximum duration for each dispatched
// request. If the handler doesn't complete within timeout, it returns a
// HandlerTimeout error immediately.
//
// The handler goroutine is not cancelled — it keeps running in the
// background after the timeout fires. The timeout only controls when the
// caller gives up waiting; true cancellation requires the handler itself
// to observe cancellation, which POTP's HandlerFunc contract (plain
// []byte in, []byte/error out) has no way to signal.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(handlerID string, req []byte) ([]byte, error) {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			done := make(chan timeoutResult, 1)
			go func() {
				ret, err := next(handlerID, req)
				done <- timeoutResult{ret, err}
			}()

			select {
			case r := <-done:
				return r.ret, r.err
			case <-ctx.Done():
				return nil, potperr.New(potperr.HandlerTimeout, "handler %q did not complete within %s", handlerID, timeout)
			}
		}
	}
}

// Package potpclient provides client-side conveniences layered on top of
// a bare endpoint.Connect/Request pair: retrying transient transport
// failures, and dialing a service name through registry discovery plus a
// loadbalance.Balancer instead of a hardcoded URI.
//
// Retrying belongs on the client: a handler already ran exactly once
// and re-invoking it server-side would break the request/reply model's
// at-most-once semantics. A client can safely retry a request that
// never reached a handler at all.
package potpclient

import (
	"time"

	"github.com/ozroc/potp-go/endpoint"
	"github.com/ozroc/potp-go/loadbalance"
	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/potplog"
	"github.com/ozroc/potp-go/registry"
)

// RetryingClient wraps an *endpoint.Endpoint and retries a Request that
// fails with a transport-level error (the request never reached a
// handler), up to maxAttempts times with a fixed backoff between
// attempts. A reply carrying a decoded HandlerException is never
// retried — the handler ran and returned an answer, retrying would
// invoke it twice.
type RetryingClient struct {
	ep          *endpoint.Endpoint
	maxAttempts int
	backoff     time.Duration
	logger      *potplog.Logger
}

// NewRetryingClient wraps ep. maxAttempts must be >= 1; a value < 1 is
// treated as 1 (no retrying).
func NewRetryingClient(ep *endpoint.Endpoint, maxAttempts int, backoff time.Duration) *RetryingClient {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryingClient{
		ep:          ep,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		logger:      potplog.New("potpclient"),
	}
}

// Request retries Endpoint.Request on the connection-wide destination.
func (c *RetryingClient) Request(payload []byte) ([]byte, error) {
	return c.do(func() ([]byte, error) { return c.ep.Request(payload) })
}

// RequestTo retries Endpoint.RequestTo against an explicit destination
// handler, e.g. an avatar ID.
func (c *RetryingClient) RequestTo(dest string, payload []byte) ([]byte, error) {
	return c.do(func() ([]byte, error) { return c.ep.RequestTo(dest, payload) })
}

func (c *RetryingClient) do(attempt func() ([]byte, error)) ([]byte, error) {
	var lastErr error
	for i := 0; i < c.maxAttempts; i++ {
		ret, err := attempt()
		if err == nil {
			return ret, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
		c.logger.Warn("request attempt %d/%d failed, retrying: %s", i+1, c.maxAttempts, err)
		if i < c.maxAttempts-1 && c.backoff > 0 {
			time.Sleep(c.backoff)
		}
	}
	return nil, lastErr
}

// isRetryable reports whether err is a local transport failure that
// means the request plausibly never reached a handler. A decoded
// HandlerException (the handler ran and raised) is never retryable.
func isRetryable(err error) bool {
	pe, ok := potperr.As(err, potperr.TransportIOError)
	if ok {
		return true
	}
	pe, ok = potperr.As(err, potperr.EndpointNotConnected)
	return ok && pe != nil
}

// Dial resolves serviceName through reg, picks one instance with bal, and
// connects ep to it. Used instead of a hardcoded endpoint.Connect call
// when server instances are published through service discovery rather
// than a fixed address.
func Dial(ep *endpoint.Endpoint, reg registry.Registry, bal loadbalance.Balancer, serviceName string) error {
	instances, err := reg.Discover(serviceName)
	if err != nil {
		return err
	}
	if len(instances) == 0 {
		return potperr.New(potperr.EndpointNotConnected, "no instances registered for service %q", serviceName)
	}
	inst, err := bal.Pick(instances)
	if err != nil {
		return err
	}
	return ep.Connect(inst.URI)
}

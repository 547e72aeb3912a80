// Package endpoint implements the POTP endpoint/dispatcher: the handler
// registry, the request/reply envelope protocol, server-side dispatch,
// and client-side request correlation.
//
// An endpoint has a flat string-ID handler registry rather than a
// service/method split: a handler function is registered under an ID
// and invoked directly, with no reflection-based method lookup.
package endpoint

import (
	"sync"

	"github.com/google/uuid"
	"github.com/ozroc/potp-go/ggcodec"
	"github.com/ozroc/potp-go/middleware"
	"github.com/ozroc/potp-go/potplog"
	"github.com/ozroc/potp-go/transport"
)

// HandlerFunc is a function registered at an endpoint under a string ID.
// The dispatcher invokes it synchronously on the connection's worker
// goroutine.
type HandlerFunc func(req []byte) ([]byte, error)

// Endpoint is an addressable participant that may act as server, client,
// or both ("full").
type Endpoint struct {
	id string

	codec     ggcodec.Codec
	transport transport.Transport

	anonymous      bool
	allowAnonymous bool

	mu        sync.RWMutex
	handlers  map[string]HandlerFunc
	defaultID string

	middlewares []middleware.Middleware
	dispatch    middleware.HandlerFunc

	destMu      sync.RWMutex
	destHandler string
	hasDest     bool

	serveMu sync.Mutex
	serving bool
	stopCh  chan struct{}

	logger *potplog.Logger
}

// New creates an Endpoint with a fresh process-lifetime-stable ID.
func New(opts ...Option) *Endpoint {
	e := &Endpoint{
		id:             uuid.New().String(),
		allowAnonymous: true,
		handlers:       make(map[string]HandlerFunc),
		logger:         potplog.New("endpoint"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.codec == nil {
		e.codec = &ggcodec.BinaryCodec{}
	}
	if e.transport == nil {
		e.transport = transport.NewTCPTransport()
	}
	e.rebuildChain()
	e.transport.Bind(e.onFrame)
	e.logger.Debug("endpoint %s created", e.id)
	return e
}

// ID returns this endpoint's opaque, process-lifetime-stable identifier.
func (e *Endpoint) ID() string { return e.id }

// Codec returns the envelope codec this endpoint was built with, so
// layers above it (e.g. the avatar package) can encode/decode their own
// sub-protocol payloads with the same wire format.
func (e *Endpoint) Codec() ggcodec.Codec { return e.codec }

// URI returns this endpoint's own address as a POTP URI, valid once the
// transport has been opened (ServeLoop) or bound to a concrete SAP.
func (e *Endpoint) URI() string {
	return "potp://" + e.transport.SAP().String()
}

// ServerEnabled reports whether this endpoint currently accepts inbound
// requests.
func (e *Endpoint) ServerEnabled() bool { return e.transport.ServerMode() }

// ClientEnabled reports whether this endpoint currently has an active
// outbound client connection.
func (e *Endpoint) ClientEnabled() bool { return e.transport.ClientMode() }

// Use registers a middleware wrapping server-side dispatch. Middlewares
// apply in the order they are added (the first Use call is outermost).
func (e *Endpoint) Use(mw middleware.Middleware) {
	e.mu.Lock()
	e.middlewares = append(e.middlewares, mw)
	e.mu.Unlock()
	e.rebuildChain()
}

func (e *Endpoint) rebuildChain() {
	e.mu.RLock()
	mws := append([]middleware.Middleware(nil), e.middlewares...)
	e.mu.RUnlock()
	e.mu.Lock()
	e.dispatch = middleware.Chain(mws...)(e.invokeHandler)
	e.mu.Unlock()
}

// invokeHandler resolves a handler ID against the registry and calls it.
// This is the innermost link of the middleware chain.
func (e *Endpoint) invokeHandler(handlerID string, req []byte) ([]byte, error) {
	e.mu.RLock()
	h, ok := e.handlers[handlerID]
	e.mu.RUnlock()
	if !ok {
		return nil, unknownDestination(handlerID)
	}
	return h(req)
}

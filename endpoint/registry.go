package endpoint

import (
	"github.com/google/uuid"
	"github.com/ozroc/potp-go/potperr"
)

// Register adds a handler to the registry. If id is empty, one is
// generated. The first handler ever registered becomes the default
// (spec invariant I2: the default is always present while any handler
// exists). Registering is safe to call while the server is running.
func (e *Endpoint) Register(handler HandlerFunc, id string) string {
	if id == "" {
		id = uuid.New().String()
	}
	e.mu.Lock()
	e.handlers[id] = handler
	if e.defaultID == "" {
		e.defaultID = id
	}
	e.mu.Unlock()
	e.logger.Debug("registered handler %s", id)
	return id
}

// SetDefault changes which handler ID is used when a request omits dest.
func (e *Endpoint) SetDefault(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.handlers[id]; !ok {
		return potperr.UnknownHandler(id)
	}
	e.defaultID = id
	return nil
}

// Unregister removes a handler. Fails if id is unknown, or if id is the
// current default — the caller must change the default first (spec I2).
func (e *Endpoint) Unregister(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.handlers[id]; !ok {
		return potperr.UnknownHandler(id)
	}
	if e.defaultID == id {
		return potperr.CannotUnregisterTheDefault(id)
	}
	delete(e.handlers, id)
	return nil
}

// DefaultHandlerID returns the current default handler ID, or "" if no
// handler has ever been registered.
func (e *Endpoint) DefaultHandlerID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.defaultID
}

func unknownDestination(id string) *potperr.Error {
	return potperr.UnknownHandler(id)
}

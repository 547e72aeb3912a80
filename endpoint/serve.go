package endpoint

import (
	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/transport"
)

// Listen opens the transport on sap without blocking. ServeLoop calls
// this itself; exposed separately so a caller (or a test) can open the
// listener and learn the resolved SAP/URI before entering the blocking
// serve loop.
func (e *Endpoint) Listen(sap transport.SAP) error {
	if sap == nil {
		sap = transport.TCPSAP{Host: "0.0.0.0", Port: 0}
	}
	return e.transport.Open(sap)
}

// ServeLoop opens the transport (if Listen hasn't already been called)
// and blocks until StopServing is called. It requires at least one
// registered handler so a default exists; otherwise it fails
// NoDefaultHandler. If sap is nil it allocates a free TCP SAP on 0.0.0.0.
//
// Blocks on a channel that StopServing closes, rather than busy-polling
// a running flag.
func (e *Endpoint) ServeLoop(sap transport.SAP) error {
	if e.DefaultHandlerID() == "" {
		return potperr.NoDefault()
	}
	if !e.transport.ServerMode() {
		if err := e.Listen(sap); err != nil {
			return err
		}
	}

	e.serveMu.Lock()
	e.stopCh = make(chan struct{})
	e.serving = true
	stopCh := e.stopCh
	e.serveMu.Unlock()

	e.logger.Info("server loop started on %s", e.transport.SAP())
	<-stopCh
	return e.transport.Close()
}

// StopServing is safe to call from any goroutine. It unblocks ServeLoop
// and closes the listener; in-flight handler invocations are allowed to
// complete.
func (e *Endpoint) StopServing() {
	e.serveMu.Lock()
	defer e.serveMu.Unlock()
	if !e.serving {
		return
	}
	e.serving = false
	close(e.stopCh)
}

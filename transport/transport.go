// Package transport implements the POTP frame transport: a length-prefixed
// bidirectional byte-frame carrier, with a TCP implementation (the only
// wire transport this module ships) and an in-process NullTransport used
// by tests that want to exercise the endpoint/avatar layers without a real
// socket.
//
// Wire frame: 4 bytes little-endian signed int32 length N, then exactly N
// payload bytes.
package transport

import "github.com/ozroc/potp-go/potplog"

// FrameHandler is the per-frame callback a server-side transport invokes
// for each inbound frame. It returns the bytes to write back, or nil for
// an empty reply frame.
type FrameHandler func(frame []byte) []byte

// Transport carries opaque byte frames in both directions, as specified by
// POTP §4.1.
type Transport interface {
	// Open binds and listens on local, starting a background accept loop.
	Open(local SAP) error
	// Close stops accepting, drains in-flight workers, and releases the
	// listening socket.
	Close() error
	// Bind installs the per-frame handler used by server-side workers.
	// May be called before or after Open; the latest call wins.
	Bind(handler FrameHandler)
	// Connect opens one client connection to remote, blocking until it
	// succeeds or fails.
	Connect(remote SAP) error
	// Disconnect half-closes then closes the client connection. Idempotent.
	Disconnect() error
	// SendRequest writes one frame on the client connection and blocks for
	// exactly one response frame.
	SendRequest(data []byte) ([]byte, error)
	// SAP reports the resolved local SAP after a successful Open.
	SAP() SAP
	// ServerMode reports whether Open has succeeded and Close has not
	// been called since.
	ServerMode() bool
	// ClientMode reports whether Connect has succeeded and Disconnect has
	// not been called since.
	ClientMode() bool
}

var logger = potplog.New("transport")

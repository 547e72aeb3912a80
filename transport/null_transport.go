package transport

import (
	"sync"

	"github.com/ozroc/potp-go/potperr"
)

// switchboard is the process-local registry of open NullTransports, keyed
// by SAP name, so a NullTransport.Connect can reach another NullTransport's
// bound handler without a real socket.
var switchboard sync.Map // name -> *NullTransport

// NullTransport is an in-process loopback transport: Open registers the
// bound handler under a name, Connect looks that name up directly and
// calls the handler synchronously. No goroutines, no sockets — useful for
// exercising the endpoint/avatar layers in tests without binding a real
// TCP port per test case.
type NullTransport struct {
	mu        sync.Mutex
	name      string
	handler   FrameHandler
	peer      *NullTransport
	open      bool
	connected bool
}

func NewNullTransport() *NullTransport {
	return &NullTransport{}
}

func (t *NullTransport) Bind(handler FrameHandler) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
}

func (t *NullTransport) Open(local SAP) error {
	sap, ok := local.(NullSAP)
	if !ok {
		return potperr.New(potperr.TransportOpenError, "NullTransport requires a NullSAP, got %T", local)
	}
	t.mu.Lock()
	t.name = sap.Name
	t.open = true
	t.mu.Unlock()
	switchboard.Store(sap.Name, t)
	return nil
}

func (t *NullTransport) Close() error {
	t.mu.Lock()
	name := t.name
	t.open = false
	t.mu.Unlock()
	if name != "" {
		switchboard.Delete(name)
	}
	return nil
}

func (t *NullTransport) Connect(remote SAP) error {
	sap, ok := remote.(NullSAP)
	if !ok {
		return potperr.New(potperr.TransportConnectError, "NullTransport requires a NullSAP, got %T", remote)
	}
	v, ok := switchboard.Load(sap.Name)
	if !ok {
		return potperr.New(potperr.TransportConnectError, "no NullTransport listening as %q", sap.Name)
	}
	t.mu.Lock()
	t.peer = v.(*NullTransport)
	t.connected = true
	t.mu.Unlock()
	return nil
}

func (t *NullTransport) Disconnect() error {
	t.mu.Lock()
	t.peer = nil
	t.connected = false
	t.mu.Unlock()
	return nil
}

func (t *NullTransport) SendRequest(data []byte) ([]byte, error) {
	t.mu.Lock()
	peer := t.peer
	t.mu.Unlock()
	if peer == nil {
		return nil, potperr.New(potperr.TransportNotConnected, "client socket is not connected")
	}
	peer.mu.Lock()
	handler := peer.handler
	peer.mu.Unlock()
	if handler == nil {
		return nil, nil
	}
	return handler(data), nil
}

func (t *NullTransport) SAP() SAP {
	t.mu.Lock()
	defer t.mu.Unlock()
	return NullSAP{Name: t.name}
}

func (t *NullTransport) ServerMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *NullTransport) ClientMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

package transport

import (
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ozroc/potp-go/potperr"
)

// TCPTransport is the sole wire transport this module ships: a TCP
// listener with one worker goroutine per accepted connection on the
// server side, and a single client socket on the client side. A TCPTransport
// may be opened, connected, or both (an endpoint owns one TCPTransport and
// uses it for its listener and its client socket alike).
type TCPTransport struct {
	mu       sync.Mutex
	listener net.Listener
	local    TCPSAP
	handler  FrameHandler
	stopping atomic.Bool
	wg       sync.WaitGroup

	sendMu sync.Mutex // serializes write+read pairs on the client socket
	client net.Conn
	remote TCPSAP
}

// NewTCPTransport creates an unopened, unconnected transport.
func NewTCPTransport() *TCPTransport {
	return &TCPTransport{}
}

func (t *TCPTransport) Bind(handler FrameHandler) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
}

func (t *TCPTransport) Open(local SAP) error {
	tcpSAP, ok := local.(TCPSAP)
	if !ok {
		return potperr.New(potperr.TransportOpenError, "TCPTransport requires a TCPSAP, got %T", local)
	}
	addr := tcpSAP.Host
	if addr == "" {
		addr = "0.0.0.0"
	}
	ln, err := net.Listen("tcp", netAddr(addr, tcpSAP.Port))
	if err != nil {
		return potperr.New(potperr.TransportOpenError, "%s", err)
	}
	resolvedPort := ln.Addr().(*net.TCPAddr).Port

	t.mu.Lock()
	t.listener = ln
	t.local = TCPSAP{Host: addr, Port: resolvedPort}
	t.stopping.Store(false)
	t.mu.Unlock()

	logger.Info("listening on %s", t.local)
	go t.acceptLoop(ln)
	return nil
}

func (t *TCPTransport) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if t.stopping.Load() {
				return
			}
			logger.Warn("accept failed: %s", err)
			return
		}
		t.wg.Add(1)
		go t.worker(conn)
	}
}

// worker serves one accepted connection: read a frame, deliver it to the
// bound handler synchronously, write the reply, repeat. On any framing
// error the worker closes this connection only; it never touches the
// listener or other connections.
func (t *TCPTransport) worker(conn net.Conn) {
	defer t.wg.Done()
	defer conn.Close()
	for {
		frame, err := readFrame(conn)
		if err != nil {
			logger.Debug("connection worker exiting: %s", err)
			return
		}
		t.mu.Lock()
		handler := t.handler
		t.mu.Unlock()

		var reply []byte
		if handler != nil {
			reply = handler(frame)
		}
		if err := writeFrame(conn, reply); err != nil {
			logger.Debug("connection worker write failed: %s", err)
			return
		}
	}
}

func (t *TCPTransport) Close() error {
	t.mu.Lock()
	ln := t.listener
	t.stopping.Store(true)
	t.mu.Unlock()
	if ln == nil {
		return nil
	}
	err := ln.Close()
	t.wg.Wait()
	t.mu.Lock()
	t.listener = nil
	t.mu.Unlock()
	if err != nil {
		return potperr.New(potperr.TransportIOError, "%s", err)
	}
	return nil
}

func (t *TCPTransport) Connect(remote SAP) error {
	tcpSAP, ok := remote.(TCPSAP)
	if !ok {
		return potperr.New(potperr.TransportConnectError, "TCPTransport requires a TCPSAP, got %T", remote)
	}
	conn, err := net.Dial("tcp", netAddr(tcpSAP.Host, tcpSAP.Port))
	if err != nil {
		return potperr.New(potperr.TransportConnectError, "%s", err)
	}
	t.sendMu.Lock()
	t.client = conn
	t.remote = tcpSAP
	t.sendMu.Unlock()
	return nil
}

func (t *TCPTransport) Disconnect() error {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	if t.client == nil {
		return nil
	}
	if tcpConn, ok := t.client.(*net.TCPConn); ok {
		tcpConn.CloseWrite()
	}
	err := t.client.Close()
	t.client = nil
	if err != nil {
		return potperr.New(potperr.TransportIOError, "%s", err)
	}
	return nil
}

func (t *TCPTransport) SendRequest(data []byte) ([]byte, error) {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	if t.client == nil {
		return nil, potperr.New(potperr.TransportNotConnected, "client socket is not connected")
	}
	if err := writeFrame(t.client, data); err != nil {
		return nil, err
	}
	return readFrame(t.client)
}

func (t *TCPTransport) SAP() SAP {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.local
}

func (t *TCPTransport) ServerMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.listener != nil
}

func (t *TCPTransport) ClientMode() bool {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	return t.client != nil
}

func netAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

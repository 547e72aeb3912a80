package endpoint

import (
	"github.com/ozroc/potp-go/ggcodec"
	"github.com/ozroc/potp-go/transport"
)

// Option configures a new Endpoint using the standard functional-options
// pattern, selecting the codec/transport implementation and the
// anonymity flags at construction time.
type Option func(*Endpoint)

// WithCodec selects the envelope codec. Defaults to ggcodec.BinaryCodec.
func WithCodec(c ggcodec.Codec) Option {
	return func(e *Endpoint) { e.codec = c }
}

// WithTransport selects the frame transport. Defaults to a new TCPTransport.
func WithTransport(t transport.Transport) Option {
	return func(e *Endpoint) { e.transport = t }
}

// Anonymous hides this endpoint's ID in outgoing requests.
func Anonymous() Option {
	return func(e *Endpoint) { e.anonymous = true }
}

// DenyAnonymous rejects inbound requests whose src is absent. Endpoints
// allow anonymous requests by default.
func DenyAnonymous() Option {
	return func(e *Endpoint) { e.allowAnonymous = false }
}

// Package potperr defines the error descriptors that travel across the
// POTP wire as the envelope's "exception" field, plus the local-only
// errors raised by the transport and URI layers.
//
// A *Error is both a normal Go error (for local callers) and a wire value:
// the codec encodes its Kind/Message/Payload into the envelope so the
// originating error is reconstructed on the other side of a Request call.
package potperr

import "fmt"

// Kind names one of the error kinds from the protocol's error table.
type Kind string

const (
	MissingMessageKey       Kind = "MissingMessageKey"
	AnonymousMessage        Kind = "AnonymousMessage"
	InvalidMessageFormat    Kind = "InvalidMessageFormat"
	HandlerNotFound         Kind = "HandlerNotFound"
	NoDefaultHandler        Kind = "NoDefaultHandler"
	CannotUnregisterDefault Kind = "CannotUnregisterDefault"
	InvalidURI              Kind = "InvalidURI"
	EndpointNotConnected    Kind = "EndpointNotConnected"
	MismatchedReply         Kind = "MismatchedReply"
	HandlerException        Kind = "HandlerException"
	TransportOpenError      Kind = "TransportOpenError"
	TransportConnectError   Kind = "TransportConnectError"
	TransportIOError        Kind = "TransportIOError"
	TransportNotConnected   Kind = "TransportNotConnected"
	NotSerializable         Kind = "NotSerializable"
	NotInstantiable         Kind = "NotInstantiable"
	CannotAttach            Kind = "CannotAttach"

	// Ambient kinds, used by the middleware/avatar layers but reported
	// through the same exception path.
	HandlerTimeout     Kind = "HandlerTimeout"
	RateLimited        Kind = "RateLimited"
	ReservedMemberName Kind = "ReservedMemberName"
)

// Error is the concrete, wire-transportable error value.
type Error struct {
	Kind    Kind
	Message string
	// Payload is optional structured detail. The constructors in this
	// package leave it nil and render kind-specific detail (e.g. the
	// missing key name) into Message instead.
	Payload []byte
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func MissingKey(key string) *Error {
	return New(MissingMessageKey, "missing key %q", key)
}

func Anonymous() *Error {
	return New(AnonymousMessage, "anonymous requests are not allowed on this endpoint")
}

func BadFormat() *Error {
	return New(InvalidMessageFormat, "message must be a record")
}

func UnknownHandler(id string) *Error {
	return New(HandlerNotFound, "handler %q is not registered", id)
}

func NoDefault() *Error {
	return New(NoDefaultHandler, "no handler registered, cannot run server loop")
}

func CannotUnregisterTheDefault(id string) *Error {
	return New(CannotUnregisterDefault, "handler %q is the default, change the default first", id)
}

func BadURI(uri string) *Error {
	return New(InvalidURI, "cannot parse %q as a POTP URI", uri)
}

func NotConnected() *Error {
	return New(EndpointNotConnected, "endpoint has no active client connection, call Connect first")
}

func Mismatched(got, want string) *Error {
	return New(MismatchedReply, "reply dest %q does not match own id %q", got, want)
}

func FromHandler(cause error) *Error {
	if pe, ok := cause.(*Error); ok {
		return pe
	}
	return New(HandlerException, "%s", cause.Error())
}

// As reports whether err is a *Error of the given kind, and if so returns it.
func As(err error, kind Kind) (*Error, bool) {
	pe, ok := err.(*Error)
	if !ok || pe == nil {
		return nil, false
	}
	return pe, pe.Kind == kind
}

package ggcodec

// CodecType identifies the wire serialization format. Carried alongside a
// codec instance rather than on the wire itself: the two sides of a POTP
// endpoint agree on a codec out of band, at construction, so no frame
// needs a negotiation byte.
type CodecType byte

const (
	CodecTypeBinary CodecType = iota
	CodecTypeJSON
)

// Codec converts an envelope Record to and from a byte frame, and
// separately provides a pluggable codec for arbitrary application payload
// values (method args/return values, carried as opaque bytes inside a
// Record).
type Codec interface {
	// EncodeRecord serializes a Record for the wire.
	EncodeRecord(rec Record) ([]byte, error)
	// DecodeRecord deserializes a Record from the wire.
	DecodeRecord(data []byte) (Record, error)
	// EncodePayload serializes an arbitrary application value into the
	// opaque bytes carried as a Record's "req"/"ret" field.
	EncodePayload(v any) ([]byte, error)
	// DecodePayload deserializes payload bytes into v (a pointer).
	DecodePayload(data []byte, v any) error
	// Type reports which wire format this codec implements.
	Type() CodecType
}

// Get returns the built-in codec for the given type.
func Get(t CodecType) Codec {
	if t == CodecTypeJSON {
		return &JSONCodec{}
	}
	return &BinaryCodec{}
}

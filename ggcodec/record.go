// Package ggcodec implements the pluggable envelope codec: encode(record)
// -> bytes, decode(bytes) -> record. "gg" for "generic" codec, distinct
// from the standard library's "encoding/..." naming — the package sits
// directly below the endpoint and avatar layers, which both exchange
// Records through it.
//
// A Record is a recursive, self-describing string-keyed map rather than a
// fixed struct, since an envelope's exception, an avatar's discovery
// reply, and an avatar's invocation args/kwargs are all shaped
// differently and no fixed layout could carry all of them.
package ggcodec

// Record is a string-keyed map of values: scalars, lists, nested records,
// and an opaque payload.
type Record map[string]any

// Allowed leaf/composite value types inside a Record: nil, bool, string,
// int64, []byte, []any (each element itself a valid value), Record.
// There is no dedicated "payload" type at this layer: application
// payloads are already opaque []byte by the time they reach the codec
// (see jsonPayload in payload.go), so they encode as plain Bytes.

package ggcodec

import "encoding/json"

// JSONCodec serializes Records with encoding/json — human-readable and
// easy to debug, at the cost of losing Go type fidelity on decode: an
// encoded int64 comes back as a JSON number (float64) and encoded
// []byte comes back as a base64 string, since DecodeRecord has no
// static field types to decode into. Callers that need typed fields
// back should use EncodePayload/DecodePayload against a concrete value
// instead of reading a Record directly.
type JSONCodec struct {
	jsonPayload
}

func (c *JSONCodec) Type() CodecType { return CodecTypeJSON }

func (c *JSONCodec) EncodeRecord(rec Record) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, notSerializable(rec)
	}
	return b, nil
}

func (c *JSONCodec) DecodeRecord(data []byte) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, notInstantiable(err.Error())
	}
	return Record(raw), nil
}

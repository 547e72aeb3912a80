package ggcodec

import "encoding/json"

// jsonPayload implements the Encode/DecodePayload half of Codec shared by
// both BinaryCodec and JSONCodec: both defer the application payload
// (method args/return values) to encoding/json and reserve their own
// distinct envelope formats for the outer record fields only. There is
// little to gain from a from-scratch payload format when the payload is
// already opaque bytes by the time it reaches the codec.
type jsonPayload struct{}

func (jsonPayload) EncodePayload(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonPayload) DecodePayload(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

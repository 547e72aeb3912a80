package ggcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryCodecRoundTrip(t *testing.T) {
	c := &BinaryCodec{}
	rec := Record{
		"src":  "client-1",
		"dest": nil,
		"n":    int64(42),
		"ok":   true,
		"tags": []any{"a", "b", int64(3)},
		"nested": Record{
			"inner": []byte("payload bytes"),
		},
	}

	data, err := c.EncodeRecord(rec)
	require.NoError(t, err)

	got, err := c.DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestBinaryCodecEmptyRecord(t *testing.T) {
	c := &BinaryCodec{}
	data, err := c.EncodeRecord(Record{})
	require.NoError(t, err)

	got, err := c.DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, Record{}, got)
}

func TestBinaryCodecRejectsUnsupportedType(t *testing.T) {
	c := &BinaryCodec{}
	_, err := c.EncodeRecord(Record{"bad": struct{}{}})
	assert.Error(t, err)
}

func TestBinaryCodecRejectsTruncatedInput(t *testing.T) {
	c := &BinaryCodec{}
	_, err := c.DecodeRecord([]byte{tagRecord, 0xff})
	assert.Error(t, err)
}

func TestBinaryCodecPayloadRoundTrip(t *testing.T) {
	c := &BinaryCodec{}
	type args struct {
		A int
		B string
	}
	in := args{A: 7, B: "hi"}

	data, err := c.EncodePayload(in)
	require.NoError(t, err)

	var out args
	require.NoError(t, c.DecodePayload(data, &out))
	assert.Equal(t, in, out)
}

func TestCodecGet(t *testing.T) {
	bin := Get(CodecTypeBinary)
	assert.Equal(t, CodecTypeBinary, bin.Type())

	js := Get(CodecTypeJSON)
	assert.Equal(t, CodecTypeJSON, js.Type())
}

package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, []byte("hello")))

	got, err := readFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestFrameZeroLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, nil))

	got, err := readFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, 4)
	// encode a length far past MaxFrameBytes
	header[0], header[1], header[2], header[3] = 0xff, 0xff, 0xff, 0x7f
	buf.Write(header)

	_, err := readFrame(&buf)
	assert.Error(t, err)
}

func TestReadFrameRejectsNegativeLength(t *testing.T) {
	var buf bytes.Buffer
	// little-endian -1
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff})

	_, err := readFrame(&buf)
	assert.Error(t, err)
}

func TestReadFrameRejectsTruncatedBody(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{10, 0, 0, 0}) // claims 10 bytes, provides none
	_, err := readFrame(&buf)
	assert.Error(t, err)
}

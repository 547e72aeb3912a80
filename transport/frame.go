package transport

import (
	"encoding/binary"
	"io"

	"github.com/ozroc/potp-go/potperr"
)

// MaxFrameBytes caps the length header to guard against a corrupt or
// hostile peer claiming an enormous frame.
const MaxFrameBytes = 64 * 1024 * 1024

// writeFrame writes the 4-byte little-endian signed length header followed
// by data.
func writeFrame(w io.Writer, data []byte) error {
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(int32(len(data))))
	if _, err := w.Write(header[:]); err != nil {
		return potperr.New(potperr.TransportIOError, "write frame header: %s", err)
	}
	if len(data) == 0 {
		return nil
	}
	if _, err := w.Write(data); err != nil {
		return potperr.New(potperr.TransportIOError, "write frame body: %s", err)
	}
	return nil
}

// readFrame reads one complete frame: a 4-byte header then exactly that
// many payload bytes, looping on short reads until satisfied or the peer
// closes.
func readFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, potperr.New(potperr.TransportIOError, "read frame header: %s", err)
	}
	n := int32(binary.LittleEndian.Uint32(header[:]))
	if n < 0 || n > MaxFrameBytes {
		return nil, potperr.New(potperr.TransportIOError, "frame length %d out of bounds", n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, potperr.New(potperr.TransportIOError, "read frame body: %s", err)
	}
	return body, nil
}

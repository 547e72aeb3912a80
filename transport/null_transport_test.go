package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullTransportRoundTrip(t *testing.T) {
	server := NewNullTransport()
	server.Bind(func(frame []byte) []byte {
		return append([]byte("echo:"), frame...)
	})
	require.NoError(t, server.Open(NullSAP{Name: "round-trip-test"}))
	defer server.Close()

	client := NewNullTransport()
	require.NoError(t, client.Connect(NullSAP{Name: "round-trip-test"}))
	assert.True(t, client.ClientMode())

	reply, err := client.SendRequest([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, []byte("echo:hi"), reply)
}

func TestNullTransportConnectFailsWithoutListener(t *testing.T) {
	client := NewNullTransport()
	err := client.Connect(NullSAP{Name: "does-not-exist"})
	assert.Error(t, err)
}

func TestNullTransportCloseRemovesFromSwitchboard(t *testing.T) {
	server := NewNullTransport()
	server.Bind(func(frame []byte) []byte { return nil })
	require.NoError(t, server.Open(NullSAP{Name: "closing-test"}))
	require.NoError(t, server.Close())

	client := NewNullTransport()
	err := client.Connect(NullSAP{Name: "closing-test"})
	assert.Error(t, err)
}

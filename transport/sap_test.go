package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSAPTCP(t *testing.T) {
	sap, err := ParseSAP("tcp@127.0.0.1:4040")
	require.NoError(t, err)
	tcp, ok := sap.(TCPSAP)
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1", tcp.Host)
	assert.Equal(t, 4040, tcp.Port)
}

func TestParseSAPTCPNoPort(t *testing.T) {
	sap, err := ParseSAP("tcp@10.0.0.1")
	require.NoError(t, err)
	tcp := sap.(TCPSAP)
	assert.Equal(t, "10.0.0.1", tcp.Host)
	assert.Equal(t, 0, tcp.Port)
}

func TestParseSAPNull(t *testing.T) {
	sap, err := ParseSAP("null@test-switchboard")
	require.NoError(t, err)
	null := sap.(NullSAP)
	assert.Equal(t, "test-switchboard", null.Name)
}

func TestParseSAPRejectsUnknownScheme(t *testing.T) {
	_, err := ParseSAP("udp@127.0.0.1:9")
	assert.Error(t, err)
}

func TestParseSAPRejectsMissingAt(t *testing.T) {
	_, err := ParseSAP("not-a-sap")
	assert.Error(t, err)
}

func TestTCPSAPString(t *testing.T) {
	assert.Equal(t, "tcp@127.0.0.1:9000", TCPSAP{Host: "127.0.0.1", Port: 9000}.String())
	assert.Equal(t, "tcp@127.0.0.1", TCPSAP{Host: "127.0.0.1"}.String())
}

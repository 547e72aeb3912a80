package uri

import (
	"testing"

	"github.com/ozroc/potp-go/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithHandler(t *testing.T) {
	u, err := Parse("potp://tcp@127.0.0.1:9000/echo")
	require.NoError(t, err)
	assert.Equal(t, "echo", u.HandlerID)
	tcp, ok := u.SAP.(transport.TCPSAP)
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1", tcp.Host)
	assert.Equal(t, 9000, tcp.Port)
}

func TestParseWithoutHandler(t *testing.T) {
	u, err := Parse("potp://tcp@127.0.0.1:9000")
	require.NoError(t, err)
	assert.Equal(t, "", u.HandlerID)
}

func TestParseRejectsWrongScheme(t *testing.T) {
	_, err := Parse("http://127.0.0.1:9000")
	assert.Error(t, err)
}

func TestParseRejectsTrailingSlashNoHandler(t *testing.T) {
	_, err := Parse("potp://tcp@127.0.0.1:9000/")
	assert.Error(t, err)
}

func TestParseRejectsBadSAP(t *testing.T) {
	_, err := Parse("potp://udp@127.0.0.1:9000")
	assert.Error(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	original := "potp://tcp@127.0.0.1:9000/echo"
	u, err := Parse(original)
	require.NoError(t, err)
	assert.Equal(t, original, u.String())
}

func TestStringWithoutHandler(t *testing.T) {
	u := URI{SAP: transport.TCPSAP{Host: "127.0.0.1", Port: 9000}}
	assert.Equal(t, "potp://tcp@127.0.0.1:9000", u.String())
}

package avatar

import (
	"testing"

	"github.com/ozroc/potp-go/endpoint"
	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttachedPair(t *testing.T, name string, methods map[string]MethodFunc, properties map[string]PropertyFunc) (*Avatar, *endpoint.Endpoint) {
	t.Helper()
	server := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	av, err := New(methods, properties)
	require.NoError(t, err)
	av.Attach(server)
	require.NoError(t, server.SetDefault(av.ID()))
	require.NoError(t, server.Listen(transport.NullSAP{Name: name}))

	client := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	require.NoError(t, client.Connect("potp://null@"+name))
	t.Cleanup(func() { client.Disconnect() })
	return av, client
}

func TestNewRejectsReservedName(t *testing.T) {
	_, err := New(map[string]MethodFunc{"attach": func(args []any, kwargs map[string]any) (any, error) { return nil, nil }}, nil)
	_, ok := potperr.As(err, potperr.ReservedMemberName)
	assert.True(t, ok)
}

func TestNewRejectsDuplicateAcrossTables(t *testing.T) {
	methods := map[string]MethodFunc{"value": func(args []any, kwargs map[string]any) (any, error) { return nil, nil }}
	properties := map[string]PropertyFunc{"value": func() (any, error) { return nil, nil }}
	_, err := New(methods, properties)
	_, ok := potperr.As(err, potperr.ReservedMemberName)
	assert.True(t, ok)
}

func TestURIAppendsAvatarID(t *testing.T) {
	av, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "potp://tcp@host:1/"+av.ID(), av.URI("potp://tcp@host:1"))
}

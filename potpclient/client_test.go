package potpclient

import (
	"errors"
	"testing"
	"time"

	"github.com/ozroc/potp-go/endpoint"
	"github.com/ozroc/potp-go/loadbalance"
	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/registry"
	"github.com/ozroc/potp-go/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	instances []registry.ServiceInstance
	err       error
}

func (r *fakeRegistry) Register(string, registry.ServiceInstance, int64) error { return nil }
func (r *fakeRegistry) Deregister(string, string) error                        { return nil }
func (r *fakeRegistry) Discover(string) ([]registry.ServiceInstance, error) {
	return r.instances, r.err
}
func (r *fakeRegistry) Watch(string) <-chan []registry.ServiceInstance { return nil }

func newConnectedPair(t *testing.T, name string) (server, client *endpoint.Endpoint) {
	t.Helper()
	server = endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	client = endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	require.NoError(t, server.Listen(transport.NullSAP{Name: name}))
	require.NoError(t, client.Connect("potp://null@"+name))
	t.Cleanup(func() { client.Disconnect() })
	return server, client
}

func TestRetryingClientReturnsDecodedError(t *testing.T) {
	_, client := newConnectedPair(t, "retry-success")
	rc := NewRetryingClient(client, 3, time.Millisecond)

	// no handler registered server-side, so the reply is a decoded
	// HandlerNotFound (non-retryable) error, which the retrying client
	// returns to the caller.
	_, err := rc.Request([]byte("x"))
	_, ok := potperr.As(err, potperr.HandlerNotFound)
	assert.True(t, ok)
}

func TestRetryingClientRetriesTransportFailureThenGivesUp(t *testing.T) {
	client := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	// never connected: every attempt fails with EndpointNotConnected
	rc := NewRetryingClient(client, 3, time.Millisecond)

	attempts := 0
	_, err := rc.do(func() ([]byte, error) {
		attempts++
		return nil, potperr.NotConnected()
	})
	_, ok := potperr.As(err, potperr.EndpointNotConnected)
	assert.True(t, ok)
	assert.Equal(t, 3, attempts)
}

func TestRetryingClientStopsOnFirstSuccess(t *testing.T) {
	client := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	rc := NewRetryingClient(client, 5, time.Millisecond)

	attempts := 0
	ret, err := rc.do(func() ([]byte, error) {
		attempts++
		if attempts < 2 {
			return nil, potperr.NotConnected()
		}
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), ret)
	assert.Equal(t, 2, attempts)
}

func TestRetryingClientDoesNotRetryHandlerException(t *testing.T) {
	client := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	rc := NewRetryingClient(client, 5, time.Millisecond)

	attempts := 0
	_, err := rc.do(func() ([]byte, error) {
		attempts++
		return nil, potperr.New(potperr.HandlerException, "app-level failure")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryingClientPropagatesNonPotpError(t *testing.T) {
	client := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	rc := NewRetryingClient(client, 3, time.Millisecond)

	attempts := 0
	_, err := rc.do(func() ([]byte, error) {
		attempts++
		return nil, errors.New("unrelated failure")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDialConnectsToDiscoveredInstance(t *testing.T) {
	server := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	id := server.Register(func(req []byte) ([]byte, error) { return req, nil }, "echo")
	require.NoError(t, server.SetDefault(id))
	require.NoError(t, server.Listen(transport.NullSAP{Name: "dial-test"}))

	reg := &fakeRegistry{instances: []registry.ServiceInstance{
		{URI: "potp://null@dial-test", Weight: 1},
	}}
	client := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	err := Dial(client, reg, &loadbalance.RoundRobinBalancer{}, "echo")
	require.NoError(t, err)
	defer client.Disconnect()

	ret, err := client.Request([]byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), ret)
}

func TestDialFailsWithNoInstances(t *testing.T) {
	client := endpoint.New(endpoint.WithTransport(transport.NewNullTransport()))
	reg := &fakeRegistry{instances: nil}
	err := Dial(client, reg, &loadbalance.RoundRobinBalancer{}, "missing-service")
	_, ok := potperr.As(err, potperr.EndpointNotConnected)
	assert.True(t, ok)
}

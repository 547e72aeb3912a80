package middleware

import (
	"testing"
	"time"

	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/potplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainOrdersOuterToInner(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(handlerID string, req []byte) ([]byte, error) {
				order = append(order, name+":before")
				ret, err := next(handlerID, req)
				order = append(order, name+":after")
				return ret, err
			}
		}
	}
	base := func(handlerID string, req []byte) ([]byte, error) { return req, nil }

	chained := Chain(mark("A"), mark("B"))(base)
	_, err := chained("h", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A:before", "B:before", "B:after", "A:after"}, order)
}

func TestChainEmptyIsIdentity(t *testing.T) {
	base := func(handlerID string, req []byte) ([]byte, error) { return req, nil }
	chained := Chain()(base)
	ret, err := chained("h", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), ret)
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	logger := potplog.New("test")
	base := func(handlerID string, req []byte) ([]byte, error) { return []byte("ok"), nil }
	wrapped := LoggingMiddleware(logger)(base)

	ret, err := wrapped("h", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), ret)
}

func TestRateLimitMiddlewareBlocksOverBurst(t *testing.T) {
	base := func(handlerID string, req []byte) ([]byte, error) { return nil, nil }
	wrapped := RateLimitMiddleware(1, 1)(base)

	_, err := wrapped("h", nil)
	require.NoError(t, err)

	_, err = wrapped("h", nil)
	_, ok := potperr.As(err, potperr.RateLimited)
	assert.True(t, ok)
}

func TestTimeoutMiddlewareFiresOnSlowHandler(t *testing.T) {
	base := func(handlerID string, req []byte) ([]byte, error) {
		time.Sleep(50 * time.Millisecond)
		return []byte("too slow"), nil
	}
	wrapped := TimeoutMiddleware(5 * time.Millisecond)(base)

	_, err := wrapped("h", nil)
	_, ok := potperr.As(err, potperr.HandlerTimeout)
	assert.True(t, ok)
}

func TestTimeoutMiddlewareAllowsFastHandler(t *testing.T) {
	base := func(handlerID string, req []byte) ([]byte, error) { return []byte("fast"), nil }
	wrapped := TimeoutMiddleware(50 * time.Millisecond)(base)

	ret, err := wrapped("h", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("fast"), ret)
}

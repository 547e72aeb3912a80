// Command potp-counter hosts or calls a stateful avatar with both a
// method (increment) and a property (value): a numeric avatar whose
// state changes across calls and is observable through a property read
// without an explicit method call.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ozroc/potp-go/avatar"
	"github.com/ozroc/potp-go/endpoint"
	"github.com/ozroc/potp-go/middleware"
	"github.com/ozroc/potp-go/potplog"
	"github.com/ozroc/potp-go/transport"
)

type counter struct {
	mu sync.Mutex
	n  int64
}

func (c *counter) increment(step int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += step
	return c.n
}

func (c *counter) value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func main() {
	mode := flag.String("mode", "server", "server or client")
	host := flag.String("host", "127.0.0.1", "TCP host")
	port := flag.Int("port", 9100, "TCP port")
	rateLimit := flag.Float64("rate", 50, "requests/sec allowed server-side")
	timeout := flag.Duration("timeout", 2*time.Second, "per-request handler timeout")
	flag.Parse()

	logger := potplog.New("potp-counter")

	switch *mode {
	case "server":
		runServer(logger, *host, *port, *rateLimit, *timeout)
	case "client":
		runClient(logger, *host, *port)
	default:
		fmt.Fprintf(os.Stderr, "unknown -mode %q, want server or client\n", *mode)
		os.Exit(2)
	}
}

func runServer(logger *potplog.Logger, host string, port int, rateLimit float64, timeout time.Duration) {
	ep := endpoint.New()
	ep.Use(middleware.LoggingMiddleware(logger))
	ep.Use(middleware.RateLimitMiddleware(rateLimit, int(rateLimit)))
	ep.Use(middleware.TimeoutMiddleware(timeout))

	c := &counter{}
	av, err := avatar.New(
		map[string]avatar.MethodFunc{
			"increment": func(args []any, kwargs map[string]any) (any, error) {
				step := int64(1)
				if len(args) > 0 {
					if s, ok := args[0].(int64); ok {
						step = s
					}
				}
				return c.increment(step), nil
			},
		},
		map[string]avatar.PropertyFunc{
			"value": func() (any, error) { return c.value(), nil },
		},
	)
	if err != nil {
		logger.Error("avatar setup failed: %s", err)
		os.Exit(1)
	}
	av.Attach(ep)
	if err := ep.SetDefault(av.ID()); err != nil {
		logger.Error("set default handler: %s", err)
		os.Exit(1)
	}

	sap := transport.TCPSAP{Host: host, Port: port}
	logger.Info("avatar id %s, serving on %s", av.ID(), sap)
	if err := ep.ServeLoop(sap); err != nil {
		logger.Error("serve loop exited: %s", err)
		os.Exit(1)
	}
}

func runClient(logger *potplog.Logger, host string, port int) {
	avatarID := flag.Arg(0)
	if avatarID == "" {
		fmt.Fprintln(os.Stderr, "usage: potp-counter -mode=client -host=H -port=P <avatar-id>")
		os.Exit(2)
	}

	ep := endpoint.New()
	uri := fmt.Sprintf("potp://tcp@%s:%d", host, port)
	if err := ep.Connect(uri); err != nil {
		logger.Error("connect failed: %s", err)
		os.Exit(1)
	}
	defer ep.Disconnect()

	proxy, err := avatar.NewProxy(ep, avatarID)
	if err != nil {
		logger.Error("attach failed: %s", err)
		os.Exit(1)
	}

	for i := 0; i < 3; i++ {
		ret, err := proxy.Call("increment", int64(1))
		if err != nil {
			logger.Error("increment failed: %s", err)
			os.Exit(1)
		}
		fmt.Println("increment ->", ret)
	}

	val, err := proxy.Get("value")
	if err != nil {
		logger.Error("get value failed: %s", err)
		os.Exit(1)
	}
	fmt.Println("value ->", val)
}

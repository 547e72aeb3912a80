// Command potp-echo hosts or calls the simplest possible avatar: one
// method, echo, that returns whatever it was given. It demonstrates the
// minimal client/server round trip end to end over a real TCP socket.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ozroc/potp-go/avatar"
	"github.com/ozroc/potp-go/endpoint"
	"github.com/ozroc/potp-go/middleware"
	"github.com/ozroc/potp-go/potplog"
	"github.com/ozroc/potp-go/transport"
)

func main() {
	mode := flag.String("mode", "server", "server or client")
	host := flag.String("host", "127.0.0.1", "TCP host")
	port := flag.Int("port", 9000, "TCP port")
	flag.Parse()

	logger := potplog.New("potp-echo")

	switch *mode {
	case "server":
		runServer(logger, *host, *port)
	case "client":
		runClient(logger, *host, *port)
	default:
		fmt.Fprintf(os.Stderr, "unknown -mode %q, want server or client\n", *mode)
		os.Exit(2)
	}
}

func runServer(logger *potplog.Logger, host string, port int) {
	ep := endpoint.New()
	ep.Use(middleware.LoggingMiddleware(logger))

	av, err := avatar.New(map[string]avatar.MethodFunc{
		"echo": func(args []any, kwargs map[string]any) (any, error) {
			if len(args) == 0 {
				return nil, nil
			}
			return args[0], nil
		},
	}, nil)
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
		fmt.Fprintln(os.Stderr, "usage: potp-echo -mode=client -host=H -port=P <avatar-id>")
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

	ret, err := proxy.Call("echo", "hello from potp-echo")
	if err != nil {
		logger.Error("call failed: %s", err)
		os.Exit(1)
	}
	fmt.Println(ret)
}

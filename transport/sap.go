package transport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ozroc/potp-go/potperr"
)

// SAP is a Service Access Point: a concrete transport address. Its string
// form is "<scheme>@<body>", e.g. "tcp@127.0.0.1:4040" or "null@".
type SAP interface {
	Scheme() string
	String() string
}

// TCPSAP addresses a TCP endpoint. Port 0 means "choose a free local port
// at bind time" — after Open/Connect succeeds the port is always concrete.
type TCPSAP struct {
	Host string
	Port int
}

func (s TCPSAP) Scheme() string { return "tcp" }

func (s TCPSAP) String() string {
	if s.Port == 0 {
		return fmt.Sprintf("tcp@%s", s.Host)
	}
	return fmt.Sprintf("tcp@%s:%d", s.Host, s.Port)
}

// NullSAP addresses the in-process NullTransport, used for tests that want
// the endpoint/avatar layers wired up without opening a real socket.
type NullSAP struct {
	Name string
}

func (s NullSAP) Scheme() string { return "null" }

func (s NullSAP) String() string {
	return fmt.Sprintf("null@%s", s.Name)
}

// ParseSAP parses a "<scheme>@<body>" string into a concrete SAP.
func ParseSAP(s string) (SAP, error) {
	scheme, body, ok := strings.Cut(s, "@")
	if !ok {
		return nil, potperr.BadURI(s)
	}
	switch scheme {
	case "tcp":
		host := body
		port := 0
		if i := strings.LastIndex(body, ":"); i >= 0 {
			host = body[:i]
			p, err := strconv.Atoi(body[i+1:])
			if err != nil {
				return nil, potperr.BadURI(s)
			}
			port = p
		}
		if host == "" {
			host = "0.0.0.0"
		}
		return TCPSAP{Host: host, Port: port}, nil
	case "null":
		return NullSAP{Name: body}, nil
	default:
		return nil, potperr.BadURI(s)
	}
}

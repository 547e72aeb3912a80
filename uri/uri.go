// Package uri parses and formats POTP URIs: potp://<sap-string>[/<handler-id>].
package uri

import (
	"strings"

	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/transport"
)

const scheme = "potp://"

// URI is a parsed POTP URI: a SAP plus an optional handler selector. An
// empty HandlerID selects the default handler on the target endpoint.
type URI struct {
	SAP       transport.SAP
	HandlerID string
}

// Parse parses "potp://<scheme>@<host>[:<port>][/<handler-id>]".
func Parse(s string) (URI, error) {
	if !strings.HasPrefix(s, scheme) {
		return URI{}, potperr.BadURI(s)
	}
	rest := s[len(scheme):]
	sapPart := rest
	handlerID := ""
	if i := strings.Index(rest, "/"); i >= 0 {
		sapPart = rest[:i]
		handlerID = rest[i+1:]
		if handlerID == "" {
			return URI{}, potperr.BadURI(s)
		}
	}
	sap, err := transport.ParseSAP(sapPart)
	if err != nil {
		return URI{}, potperr.BadURI(s)
	}
	return URI{SAP: sap, HandlerID: handlerID}, nil
}

// String renders the URI back into its wire form.
func (u URI) String() string {
	if u.HandlerID == "" {
		return scheme + u.SAP.String()
	}
	return scheme + u.SAP.String() + "/" + u.HandlerID
}

// Package avatar implements the avatar/proxy layer: a tiny
// discovery+invocation sub-protocol layered atop an endpoint, letting a
// newly connected proxy enumerate an avatar's members and invoke them.
//
// Exported members are declared explicitly as name->function maps at
// construction, rather than discovered by reflecting over an arbitrary
// object's methods — an explicit table is what a Go interface would
// reach for anyway, and it keeps exported names independent of Go method
// naming and visibility rules.
package avatar

import (
	"github.com/google/uuid"
	"github.com/ozroc/potp-go/endpoint"
	"github.com/ozroc/potp-go/ggcodec"
	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/potplog"
)

// MethodFunc implements one exported avatar method. args and kwargs are
// what the proxy's caller passed to Proxy.Call or Proxy.CallKW, after a
// round trip through the endpoint's codec.
type MethodFunc func(args []any, kwargs map[string]any) (any, error)

// PropertyFunc implements one exported nullary avatar property.
type PropertyFunc func() (any, error)

// Reserved member names a user cannot export: they would collide with
// the avatar's own sub-protocol surface.
var reserved = map[string]struct{}{
	"attach":           {},
	"members":          {},
	"dispatch_request": {},
}

// Avatar is a local Go object published for remote invocation.
type Avatar struct {
	id         string
	methods    map[string]MethodFunc
	properties map[string]PropertyFunc

	ep     *endpoint.Endpoint
	codec  ggcodec.Codec
	logger *potplog.Logger
}

// New validates and constructs an Avatar from explicit method/property
// tables. Names must be non-empty, unique across both tables, and not one
// of the reserved names.
func New(methods map[string]MethodFunc, properties map[string]PropertyFunc) (*Avatar, error) {
	seen := make(map[string]struct{}, len(methods)+len(properties))
	for name := range methods {
		if err := validateName(name, seen); err != nil {
			return nil, err
		}
	}
	for name := range properties {
		if err := validateName(name, seen); err != nil {
			return nil, err
		}
	}
	return &Avatar{
		id:         uuid.New().String(),
		methods:    methods,
		properties: properties,
		logger:     potplog.New("avatar"),
	}, nil
}

func validateName(name string, seen map[string]struct{}) error {
	if name == "" {
		return potperr.New(potperr.ReservedMemberName, "exported member name must not be empty")
	}
	if _, isReserved := reserved[name]; isReserved {
		return potperr.New(potperr.ReservedMemberName, "%q is a reserved avatar member name", name)
	}
	if _, dup := seen[name]; dup {
		return potperr.New(potperr.ReservedMemberName, "member %q exported more than once", name)
	}
	seen[name] = struct{}{}
	return nil
}

// ID returns this avatar's generated ID.
func (a *Avatar) ID() string { return a.id }

// URI returns "<endpointURI>/<avatar-id>" for out-of-band distribution to
// clients.
func (a *Avatar) URI(endpointURI string) string {
	return endpointURI + "/" + a.id
}

// Attach registers this avatar's handler at its own ID on ep, implementing
// the discovery+invocation sub-protocol.
func (a *Avatar) Attach(ep *endpoint.Endpoint) {
	a.ep = ep
	a.codec = ep.Codec()
	ep.Register(a.dispatchRequest, a.id)
	a.logger.Debug("avatar %s attached to %s", a.id, ep.URI())
}

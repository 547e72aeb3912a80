package avatar

import (
	"github.com/google/uuid"
	"github.com/ozroc/potp-go/endpoint"
	"github.com/ozroc/potp-go/ggcodec"
	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/potplog"
)

// Proxy is a client-side stand-in for a remote Avatar. Go has no
// runtime method synthesis, so instead of generating one method per
// discovered member, a Proxy exposes an explicit dispatch table:
// Call/Get plus the frozen Members/Properties sets a typed facade can
// be built from.
type Proxy struct {
	ep  *endpoint.Endpoint
	pid string
	aid string

	attached   bool
	members    map[string]struct{}
	properties map[string]struct{}

	codec  ggcodec.Codec
	logger *potplog.Logger
}

// NewProxy creates a proxy bound to a client endpoint. If aid is
// non-empty it attaches immediately; otherwise the caller must call
// AttachProxy later.
func NewProxy(ep *endpoint.Endpoint, aid string) (*Proxy, error) {
	p := &Proxy{
		ep:     ep,
		pid:    uuid.New().String(),
		codec:  ep.Codec(),
		logger: potplog.New("proxy"),
	}
	if aid != "" {
		if err := p.AttachProxy(aid); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Attached reports whether discovery has completed.
func (p *Proxy) Attached() bool { return p.attached }

// Members returns the frozen set of exported method names discovered at
// attach time.
func (p *Proxy) Members() []string { return keys(p.members) }

// Properties returns the frozen set of exported property names discovered
// at attach time.
func (p *Proxy) Properties() []string { return keys(p.properties) }

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// AttachProxy issues the discovery request against avatar id aid,
// validates the reply, and freezes the discovered member/property sets.
// Fails CannotAttach if the reply is missing, malformed, or the endpoint
// errors out.
func (p *Proxy) AttachProxy(aid string) error {
	p.aid = aid
	reqBytes, err := p.codec.EncodeRecord(ggcodec.Record{"attach": p.pid})
	if err != nil {
		return cannotAttach(aid, err)
	}

	replyBytes, err := p.ep.RequestTo(aid, reqBytes)
	if err != nil {
		return cannotAttach(aid, err)
	}

	rec, err := p.codec.DecodeRecord(replyBytes)
	if err != nil {
		return cannotAttach(aid, err)
	}

	membersRaw, ok1 := rec["members"].([]any)
	propsRaw, ok2 := rec["properties"].([]any)
	if !ok1 || !ok2 {
		return cannotAttach(aid, potperr.New(potperr.CannotAttach, "discovery reply missing members/properties"))
	}

	members := make(map[string]struct{}, len(membersRaw))
	for _, v := range membersRaw {
		if name, ok := v.(string); ok {
			members[name] = struct{}{}
		}
	}
	properties := make(map[string]struct{}, len(propsRaw))
	for _, v := range propsRaw {
		if name, ok := v.(string); ok {
			properties[name] = struct{}{}
		}
	}

	p.members = members
	p.properties = properties
	p.attached = true
	p.logger.Debug("proxy attached to avatar %s: %d members, %d properties", aid, len(members), len(properties))
	return nil
}

func cannotAttach(aid string, cause error) error {
	return potperr.New(potperr.CannotAttach, "cannot attach to avatar %q: %s", aid, cause)
}

// Call invokes a remote method by name with positional args and no
// keyword args. Use CallKW for keyword arguments.
func (p *Proxy) Call(name string, args ...any) (any, error) {
	return p.CallKW(name, args, nil)
}

// CallKW invokes a remote method by name with positional and keyword
// arguments. Calling a name that was not in the discovered member set
// is a local error — the absence of a stub — without a round trip.
func (p *Proxy) CallKW(name string, args []any, kwargs map[string]any) (any, error) {
	if _, ok := p.members[name]; !ok {
		return nil, potperr.New(potperr.HandlerNotFound, "proxy has no member %q", name)
	}
	return p.dispatch(name, args, kwargs)
}

// Get evaluates a remote property by name. Like Call, an undiscovered
// name is a local error.
func (p *Proxy) Get(name string) (any, error) {
	if _, ok := p.properties[name]; !ok {
		return nil, potperr.New(potperr.HandlerNotFound, "proxy has no property %q", name)
	}
	return p.dispatch(name, nil, nil)
}

func (p *Proxy) dispatch(name string, args []any, kwargs map[string]any) (any, error) {
	if args == nil {
		args = []any{}
	}
	reqBytes, err := p.codec.EncodeRecord(ggcodec.Record{
		"member": name,
		"args":   args,
		"kwargs": ggcodec.Record(kwargs),
	})
	if err != nil {
		return nil, err
	}

	replyBytes, err := p.ep.RequestTo(p.aid, reqBytes)
	if err != nil {
		return nil, err
	}

	rec, err := p.codec.DecodeRecord(replyBytes)
	if err != nil {
		return nil, err
	}

	if isExc, _ := rec["is_exception"].(bool); isExc {
		descRec, _ := rec["return"].(ggcodec.Record)
		kind, _ := descRec["kind"].(string)
		message, _ := descRec["message"].(string)
		return nil, &potperr.Error{Kind: potperr.Kind(kind), Message: message}
	}

	return rec["return"], nil
}

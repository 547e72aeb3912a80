package avatar

import (
	"github.com/ozroc/potp-go/ggcodec"
	"github.com/ozroc/potp-go/potperr"
)

// dispatchRequest is the avatar's handler function, registered at the
// avatar's ID. req is itself a Record: either a discovery request
// {attach: pid} or an invocation request {member, args, kwargs}.
func (a *Avatar) dispatchRequest(req []byte) ([]byte, error) {
	rec, err := a.codec.DecodeRecord(req)
	if err != nil {
		return nil, err
	}

	if _, isAttach := rec["attach"]; isAttach {
		return a.codec.EncodeRecord(a.discoveryReply())
	}

	memberName, _ := rec["member"].(string)
	args, _ := rec["args"].([]any)
	kwargs := recordToMap(rec["kwargs"])

	if prop, ok := a.properties[memberName]; ok {
		val, err := prop()
		if err != nil {
			return a.codec.EncodeRecord(exceptionRecord(err))
		}
		return a.codec.EncodeRecord(ggcodec.Record{"return": val, "property": true})
	}

	if method, ok := a.methods[memberName]; ok {
		val, err := method(args, kwargs)
		if err != nil {
			return a.codec.EncodeRecord(exceptionRecord(err))
		}
		return a.codec.EncodeRecord(ggcodec.Record{"return": val})
	}

	return a.codec.EncodeRecord(exceptionRecord(potperr.New(potperr.HandlerNotFound, "avatar %s has no member %q", a.id, memberName)))
}

func (a *Avatar) discoveryReply() ggcodec.Record {
	members := make([]any, 0, len(a.methods))
	for name := range a.methods {
		members = append(members, name)
	}
	properties := make([]any, 0, len(a.properties))
	for name := range a.properties {
		properties = append(properties, name)
	}
	return ggcodec.Record{"members": members, "properties": properties}
}

func recordToMap(v any) map[string]any {
	rec, ok := v.(ggcodec.Record)
	if !ok {
		return map[string]any{}
	}
	return map[string]any(rec)
}

func exceptionRecord(cause error) ggcodec.Record {
	pe := potperr.FromHandler(cause)
	return ggcodec.Record{
		"return": ggcodec.Record{
			"kind":    string(pe.Kind),
			"message": pe.Message,
		},
		"is_exception": true,
	}
}

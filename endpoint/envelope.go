package endpoint

import (
	"github.com/ozroc/potp-go/ggcodec"
	"github.com/ozroc/potp-go/potperr"
)

// The envelope shapes: a request carries src/dest/req, a reply carries
// src/dest/error and either ret or exception.

func stringOrNil(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func bytesOf(v any) ([]byte, bool) {
	if v == nil {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func toExceptionRecord(err *potperr.Error) ggcodec.Record {
	rec := ggcodec.Record{
		"kind":    string(err.Kind),
		"message": err.Message,
	}
	if err.Payload != nil {
		rec["payload"] = err.Payload
	}
	return rec
}

func fromExceptionRecord(v any) (*potperr.Error, error) {
	rec, ok := v.(ggcodec.Record)
	if !ok {
		return nil, potperr.MissingKey("exception")
	}
	kind, _ := stringOrNil(rec["kind"])
	message, _ := stringOrNil(rec["message"])
	payload, _ := bytesOf(rec["payload"])
	return &potperr.Error{Kind: potperr.Kind(kind), Message: message, Payload: payload}, nil
}

// buildRequestRecord constructs the wire record for an outbound request.
func buildRequestRecord(src *string, dest *string, req []byte) ggcodec.Record {
	rec := ggcodec.Record{"req": req}
	if src != nil {
		rec["src"] = *src
	} else {
		rec["src"] = nil
	}
	if dest != nil {
		rec["dest"] = *dest
	} else {
		rec["dest"] = nil
	}
	return rec
}

// buildReplyRecord constructs the wire record for a reply: exactly one of
// ret/exception is set, matching invariant I3.
func buildReplyRecord(src, dest string, hasDest bool, ret []byte, callErr error) ggcodec.Record {
	rec := ggcodec.Record{"src": src}
	if hasDest {
		rec["dest"] = dest
	} else {
		rec["dest"] = nil
	}
	if callErr != nil {
		rec["error"] = true
		rec["exception"] = toExceptionRecord(potperr.FromHandler(callErr))
		return rec
	}
	rec["error"] = false
	rec["ret"] = ret
	return rec
}

func errorReply(err *potperr.Error) ggcodec.Record {
	return ggcodec.Record{
		"src":       nil,
		"dest":      nil,
		"error":     true,
		"exception": toExceptionRecord(err),
	}
}

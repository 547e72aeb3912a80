package endpoint

import (
	"github.com/ozroc/potp-go/ggcodec"
	"github.com/ozroc/potp-go/potperr"
)

// onFrame is the transport's FrameHandler: decode one request frame,
// validate it, resolve its destination handler, invoke it synchronously,
// and encode the reply.
func (e *Endpoint) onFrame(frame []byte) []byte {
	rec, err := e.codec.DecodeRecord(frame)
	if err != nil {
		// Step 1: any decode failure is reported as the canned "missing
		// key" marker — the client learns the request was malformed
		// without the server trying to guess which key.
		return e.encodeOrEmpty(errorReply(potperr.MissingKey("request")))
	}

	reqBytes, hasReq := bytesOf(rec["req"])
	destVal, destPresent := rec["dest"]
	if !hasReq {
		return e.encodeOrEmpty(errorReply(potperr.MissingKey("req")))
	}
	if !destPresent {
		return e.encodeOrEmpty(errorReply(potperr.MissingKey("dest")))
	}

	srcVal, srcPresent := rec["src"]
	var src string
	var hasSrc bool
	if srcPresent {
		src, hasSrc = stringOrNil(srcVal)
	}
	if !hasSrc && !e.allowAnonymous {
		return e.encodeOrEmpty(errorReply(potperr.Anonymous()))
	}

	var destID string
	if destVal == nil {
		destID = e.DefaultHandlerID()
		if destID == "" {
			return e.encodeOrEmpty(errorReply(potperr.UnknownHandler("(no default)")))
		}
	} else {
		d, ok := stringOrNil(destVal)
		if !ok {
			return e.encodeOrEmpty(errorReply(potperr.MissingKey("dest")))
		}
		destID = d
		e.mu.RLock()
		_, known := e.handlers[destID]
		e.mu.RUnlock()
		if !known {
			return e.encodeOrEmpty(errorReply(potperr.UnknownHandler(destID)))
		}
	}

	ret, callErr := e.dispatch(destID, reqBytes)

	reply := buildReplyRecord(destID, src, hasSrc, ret, callErr)
	return e.encodeOrEmpty(reply)
}

func (e *Endpoint) encodeOrEmpty(rec ggcodec.Record) []byte {
	b, err := e.codec.EncodeRecord(rec)
	if err != nil {
		e.logger.Error("failed to encode reply: %s", err)
		return []byte{}
	}
	return b
}

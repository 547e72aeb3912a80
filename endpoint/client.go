package endpoint

import (
	"github.com/ozroc/potp-go/potperr"
	"github.com/ozroc/potp-go/uri"
)

// Connect parses uri, splits off its optional handler segment (stored as
// the destination handler for subsequent Request calls), and opens the
// client connection. Fails InvalidURI for a wrong scheme or unparseable
// SAP.
func (e *Endpoint) Connect(rawURI string) error {
	parsed, err := uri.Parse(rawURI)
	if err != nil {
		return err
	}
	if err := e.transport.Connect(parsed.SAP); err != nil {
		return err
	}
	e.destMu.Lock()
	e.destHandler = parsed.HandlerID
	e.hasDest = parsed.HandlerID != ""
	e.destMu.Unlock()
	e.logger.Info("connected to %s", rawURI)
	return nil
}

// Disconnect closes the client connection. It does not interrupt a Request
// already in flight: the TCP transport waits for that request's reply
// before closing the socket, so the outstanding Request completes normally.
func (e *Endpoint) Disconnect() error {
	e.destMu.Lock()
	e.destHandler = ""
	e.hasDest = false
	e.destMu.Unlock()
	return e.transport.Disconnect()
}

// Request sends payload to the connected endpoint's destination handler
// (the one selected by Connect's URI, or the remote default if none was
// given) and returns its application reply, or the reconstructed remote
// error.
func (e *Endpoint) Request(payload []byte) ([]byte, error) {
	e.destMu.RLock()
	var destPtr *string
	if e.hasDest {
		d := e.destHandler
		destPtr = &d
	}
	e.destMu.RUnlock()
	return e.requestTo(destPtr, payload)
}

// RequestTo sends payload addressed explicitly at dest, bypassing the
// connection-wide destination handler Connect established. The avatar
// layer uses this to address a specific avatar ID over a client endpoint
// that may also be used for other handlers: the attach handshake's dest
// is the avatar ID, not whatever Connect's URI carried.
func (e *Endpoint) RequestTo(dest string, payload []byte) ([]byte, error) {
	return e.requestTo(&dest, payload)
}

func (e *Endpoint) requestTo(destPtr *string, payload []byte) ([]byte, error) {
	if !e.transport.ClientMode() {
		return nil, potperr.NotConnected()
	}

	var srcPtr *string
	if !e.anonymous {
		id := e.id
		srcPtr = &id
	}

	reqRec := buildRequestRecord(srcPtr, destPtr, payload)
	reqBytes, err := e.codec.EncodeRecord(reqRec)
	if err != nil {
		return nil, err
	}

	replyBytes, err := e.transport.SendRequest(reqBytes)
	if err != nil {
		return nil, err
	}

	replyRec, err := e.codec.DecodeRecord(replyBytes)
	if err != nil {
		return nil, err
	}

	errVal, hasErr := replyRec["error"]
	if !hasErr {
		return nil, potperr.MissingKey("error")
	}
	isError, _ := errVal.(bool)

	srcVal, srcPresent := replyRec["src"]
	_, hasReplySrc := stringOrNil(srcVal)
	if srcPresent && !hasReplySrc && !e.allowAnonymous {
		return nil, potperr.Anonymous()
	}

	if destVal, present := replyRec["dest"]; present && destVal != nil {
		gotDest, _ := stringOrNil(destVal)
		if gotDest != e.id {
			return nil, potperr.Mismatched(gotDest, e.id)
		}
	}

	if isError {
		excVal, hasExc := replyRec["exception"]
		if !hasExc {
			return nil, potperr.MissingKey("exception")
		}
		reconstructed, err := fromExceptionRecord(excVal)
		if err != nil {
			return nil, err
		}
		return nil, reconstructed
	}

	retBytes, hasRet := bytesOf(replyRec["ret"])
	if !hasRet {
		return nil, potperr.MissingKey("ret")
	}
	return retBytes, nil
}

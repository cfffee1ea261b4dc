package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

// ErrorResponse is the body of every non-2xx response the API serves.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// EndpointResult is everything needed to write out an API response: the
// status, the body object, and a more detailed internal message that is
// logged but never displayed to the caller.
type EndpointResult struct {
	status      int
	resp        interface{}
	isErr       bool
	internalMsg string
}

// jsonOK returns an EndpointResult containing an HTTP-200 along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func jsonOK(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	internalMsgFmt := "OK"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return jsonResponse(http.StatusOK, respObj, internalMsgFmt, msgArgs...)
}

// jsonCreated returns an EndpointResult containing an HTTP-201 along with a
// more detailed message (if desired; if none is provided it defaults to a
// generic one) that is not displayed to the user.
func jsonCreated(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	internalMsgFmt := "created"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return jsonResponse(http.StatusCreated, respObj, internalMsgFmt, msgArgs...)
}

// jsonNoContent returns an EndpointResult containing an HTTP-204 along with
// a more detailed message (if desired; if none is provided it defaults to a
// generic one) that is not displayed to the user.
func jsonNoContent(internalMsg ...interface{}) EndpointResult {
	internalMsgFmt := "no content"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return jsonResponse(http.StatusNoContent, nil, internalMsgFmt, msgArgs...)
}

// jsonBadRequest returns an EndpointResult containing an HTTP-400 along with
// a more detailed message that is not displayed to the user.
func jsonBadRequest(userMsg string, internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusBadRequest, userMsg, "bad request", internalMsg...)
}

// jsonNotFound returns an EndpointResult containing an HTTP-404 along with a
// more detailed message that is not displayed to the user.
func jsonNotFound(internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusNotFound, "The requested resource was not found", "not found", internalMsg...)
}

// jsonConflict returns an EndpointResult containing an HTTP-409 along with a
// more detailed message that is not displayed to the user.
func jsonConflict(userMsg string, internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusConflict, userMsg, "conflict", internalMsg...)
}

// jsonInternalServerError returns an EndpointResult containing an HTTP-500
// along with a more detailed message that is not displayed to the user.
func jsonInternalServerError(internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusInternalServerError, "An internal server error occurred", "internal server error", internalMsg...)
}

func jsonErr(status int, userMsg, defaultInternalMsg string, internalMsg ...interface{}) EndpointResult {
	internalMsgFmt := defaultInternalMsg
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return EndpointResult{
		status:      status,
		resp:        ErrorResponse{Error: userMsg, Status: status},
		isErr:       true,
		internalMsg: fmt.Sprintf(internalMsgFmt, msgArgs...),
	}
}

func jsonResponse(status int, respObj interface{}, internalMsgFmt string, msgArgs ...interface{}) EndpointResult {
	return EndpointResult{
		status:      status,
		resp:        respObj,
		internalMsg: fmt.Sprintf(internalMsgFmt, msgArgs...),
	}
}

func (r EndpointResult) writeResponse(w http.ResponseWriter, req *http.Request) {
	if r.isErr {
		log.Printf("ERROR: HTTP-%d: %s: %s", r.status, req.URL.Path, r.internalMsg)
	} else {
		log.Printf("INFO:  HTTP-%d: %s: %s", r.status, req.URL.Path, r.internalMsg)
	}

	if r.status == http.StatusNoContent {
		w.WriteHeader(r.status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	if err := json.NewEncoder(w).Encode(r.resp); err != nil {
		log.Printf("ERROR: could not write response body: %s", err.Error())
	}
}

// panicTo500 must be deferred at the top of every handler so an unexpected
// panic is converted to an HTTP-500 instead of killing the connection with
// no response.
func panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		log.Printf("ERROR: panic during handling of %s %s: %v\n%s", req.Method, req.URL.Path, panicErr, debug.Stack())
		jsonInternalServerError("panic: %v", panicErr).writeResponse(w, req)
	}
}

// parseJSON parses the request body as JSON into the given target.
func parseJSON(req *http.Request, target interface{}) error {
	defer req.Body.Close()
	if err := json.NewDecoder(req.Body).Decode(target); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

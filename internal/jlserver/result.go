// Package jlserver exposes the extraction engine over HTTP: a typed Result
// response envelope, chi routing, and bearer-JWT auth.
package jlserver

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the JSON body written for any non-2xx Result.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Result is a deferred HTTP response: handlers build one and return it
// without writing to the ResponseWriter directly, so a single place
// (WriteResponse) is responsible for status codes, headers, and body
// encoding.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string
}

// OK returns a 200 Result carrying respObj as its JSON body.
func OK(respObj interface{}, internalMsg string) Result {
	return Result{Status: http.StatusOK, IsJSON: true, InternalMsg: internalMsg, resp: respObj}
}

// Err returns a Result carrying a JSON ErrorResponse with the given status
// and user-facing message.
func Err(status int, userMsg, internalMsg string) Result {
	return Result{
		Status:      status,
		IsErr:       true,
		IsJSON:      true,
		InternalMsg: internalMsg,
		resp:        ErrorResponse{Error: userMsg, Status: status},
	}
}

// Unauthorized returns a 401 Result with a WWW-Authenticate header.
func Unauthorized(userMsg, internalMsg string) Result {
	if userMsg == "" {
		userMsg = "you are not authorized to do that"
	}
	return Err(http.StatusUnauthorized, userMsg, internalMsg).
		WithHeader("WWW-Authenticate", `Bearer realm="jl server"`)
}

// InternalServerError returns a 500 Result; internalMsg is logged but never
// shown to the client.
func InternalServerError(internalMsg string) Result {
	return Err(http.StatusInternalServerError, "an internal server error occurred", internalMsg)
}

// BadRequest returns a 400 Result.
func BadRequest(userMsg, internalMsg string) Result {
	return Err(http.StatusBadRequest, userMsg, internalMsg)
}

// Text returns a Result whose body is plain text rather than JSON, used for
// streaming extracted rows back to the client.
func Text(status int, body string, internalMsg string) Result {
	return Result{Status: status, IsJSON: false, InternalMsg: internalMsg, resp: body}
}

// WithHeader returns a copy of r with an additional response header set.
func (r Result) WithHeader(name, val string) Result {
	r.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return r
}

// WriteResponse writes r to w.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	var body []byte
	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		b, err := json.Marshal(r.resp)
		if err != nil {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "could not marshal response: %s", err.Error())
			return
		}
		body = b
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		body = []byte(fmt.Sprintf("%v", r.resp))
	}

	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}

	w.WriteHeader(r.Status)
	if r.Status != http.StatusNoContent {
		w.Write(body)
	}
}

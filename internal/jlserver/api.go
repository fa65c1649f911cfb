package jlserver

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajbruin/jl/internal/jlengine"
	"github.com/ajbruin/jl/internal/jlerrors"
	"github.com/ajbruin/jl/internal/version"
)

// PathPrefix is the prefix of all routes exposed by this API. Routers
// should mount a sub-router at this path.
const PathPrefix = "/api/v1"

// API holds the parameters needed to run the extraction engine as an HTTP
// service.
type API struct {
	// Secret signs and validates the bearer JWTs minted by HTTPCreateToken.
	Secret []byte

	// UnauthDelay is how long an unauthorized/forbidden/internal-error
	// request is held before a response is sent, to deprioritize such
	// requests from processing and I/O.
	UnauthDelay time.Duration
}

type endpointFunc func(req *http.Request) Result

func (api API) wrap(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer api.panicTo500(w, req)

		r := ep(req)
		if r.Status == 0 {
			logResponse(req, http.StatusInternalServerError, "endpoint result was never populated")
			InternalServerError("endpoint result was never populated").WriteResponse(w)
			return
		}

		logResponse(req, r.Status, r.InternalMsg)
		if r.Status == http.StatusUnauthorized || r.Status == http.StatusInternalServerError {
			time.Sleep(api.UnauthDelay)
		}
		r.WriteResponse(w)
	}
}

func (api API) panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicVal := recover(); panicVal != nil {
		InternalServerError(fmt.Sprintf("panic: %v\n%s", panicVal, debug.Stack())).WriteResponse(w)
	}
}

// requestID is middleware that tags every response with a fresh UUID in the
// X-Request-Id header. The UUID is not written to the log.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.New()
		w.Header().Set("X-Request-Id", id.String())
		next.ServeHTTP(w, req)
	})
}

func logResponse(req *http.Request, status int, msg string) {
	remote := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s: HTTP-%d %s", remote, req.URL.Path, status, msg)
}

// HTTPGetInfo returns version information about the running server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.wrap(api.epGetInfo)
}

type infoModel struct {
	Version string `json:"version"`
}

func (api API) epGetInfo(req *http.Request) Result {
	return OK(infoModel{Version: version.Current}, "got server info")
}

// HTTPCreateToken issues a bearer JWT to any client that supplies the
// server's configured secret as the request body.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return api.wrap(api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) Result {
	body, err := io.ReadAll(io.LimitReader(req.Body, 4096))
	if err != nil {
		return BadRequest("could not read request body", err.Error())
	}
	if subtleConstantTimeEqual(body, api.Secret) {
		tok, err := generateToken(api.Secret)
		if err != nil {
			return InternalServerError("could not generate JWT: " + err.Error())
		}
		return OK(tokenResponse{Token: tok}, "issued token")
	}
	return Unauthorized("", "secret did not match")
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HTTPExtract runs the extraction engine against the request body and
// streams delimited rows back as the response.
func (api API) HTTPExtract() http.HandlerFunc {
	return api.wrap(api.epExtract)
}

func (api API) epExtract(req *http.Request) Result {
	pattern := req.URL.Query().Get("pattern")
	if pattern == "" {
		return BadRequest("pattern query parameter is required", "missing pattern")
	}

	sep := req.URL.Query().Get("sep")
	if sep == "" {
		sep = "\t"
	}

	var out strings.Builder
	eng, err := jlengine.Compile(pattern, sep, &out)
	if err != nil {
		return patternErrResult(err)
	}

	if err := eng.Run(req.Body); err != nil {
		return patternErrResult(err)
	}

	return Text(http.StatusOK, out.String(), "extracted rows")
}

func patternErrResult(err error) Result {
	if kind, ok := jlerrors.KindOf(err); ok {
		switch kind {
		case jlerrors.Usage, jlerrors.Pattern:
			return BadRequest(err.Error(), err.Error())
		case jlerrors.Lex, jlerrors.Parse:
			return Err(http.StatusUnprocessableEntity, err.Error(), err.Error())
		}
	}
	return InternalServerError(err.Error())
}

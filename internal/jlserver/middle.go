package jlserver

import (
	"context"
	"net/http"
	"time"
)

type authKey int

const authLoggedIn authKey = iota

// requireAuth is middleware that rejects any request without a valid
// bearer token, for a domain with a single fixed service identity rather
// than a user database.
func requireAuth(secret []byte, unauthDelay time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := bearerToken(req)
		if err == nil {
			err = validateToken(tok, secret)
		}
		if err != nil {
			time.Sleep(unauthDelay)
			Unauthorized("", err.Error()).WriteResponse(w)
			return
		}

		ctx := context.WithValue(req.Context(), authLoggedIn, true)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

package jlserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultUnauthDelay is used when API.UnauthDelay is left at its zero
// value, so a caller who forgets to set it does not accidentally disable
// the deprioritization of bad requests.
const DefaultUnauthDelay = 1 * time.Second

// Router builds the complete chi router for the API: a request-ID tagged,
// logged router mounted at PathPrefix, with /extract behind bearer auth
// and /token and /info open.
func (api API) Router() http.Handler {
	if api.UnauthDelay <= 0 {
		api.UnauthDelay = DefaultUnauthDelay
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route(PathPrefix, func(r chi.Router) {
		r.Get("/info", api.HTTPGetInfo())
		r.Post("/token", api.HTTPCreateToken())

		r.Group(func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return requireAuth(api.Secret, api.UnauthDelay, next)
			})
			r.Post("/extract", api.HTTPExtract())
		})
	})

	return r
}

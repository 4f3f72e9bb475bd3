package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes behind bearer token authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/sync/{syncID}", func(r chi.Router) {
			r.With(h.syncRunHashing).Post("/run", h.runSync)
			r.Get("/", h.getSyncProgress)
		})

		r.Post("/api/references", h.createReference)
		r.Get("/api/references", h.listReferences)
		r.Get("/api/references/{credentialID}", h.getReference)

		r.Post("/api/status/expand", h.expandStatus)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

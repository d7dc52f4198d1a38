package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	// an empty origin list would make cors allow everyone
	if len(h.cfg.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Content-Type", traceIDHeader},
			ExposedHeaders:   []string{traceIDHeader},
			AllowCredentials: true,
		}))
	}
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	router.Use(withGZip)
	router.Use(h.withSession)

	router.Get("/", h.home)
	router.Get("/login", h.loginPage)
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/version/build", h.getBuildInfo)

	router.Route("/{user}", func(r chi.Router) {
		r.Get("/profile", h.viewProfile)
		r.Get("/files", h.listFiles)

		// mutations: owner only
		r.Group(func(r chi.Router) {
			r.Use(h.limitBody)
			r.Use(h.requireOwner)
			r.Post("/profile", h.updateProfile)
			r.Post("/files", h.uploadFile)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

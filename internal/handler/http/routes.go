package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// promhttp negotiates its own compression
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5, "application/json", "text/plain"))
		r.Use(h.withHashing)

		r.Get("/api/version/", h.getAppVersion)
		r.Get("/api/version/build", h.getBuildInfo)

		r.Route("/api/sync", func(r chi.Router) {
			r.Get("/status", h.getSyncStatus)
			r.Get("/operations", h.listOperations)
			r.Post("/drain", h.drainQueue)
			r.Post("/retry", h.retryFailed)
			r.Delete("/failed", h.clearFailed)
		})

		r.Put("/api/network/{state}", h.setNetworkState)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

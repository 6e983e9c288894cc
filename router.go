package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. CORS origins come from CORS_ORIGINS.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(a.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", a.handleHealth)

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
			w.Header().Set("Cache-Control", "public, max-age=60")
			w.Write(openapiYAML)
		})

		api.Post("/yields", a.handleCreateYield)
		api.Put("/yields", a.handleUpdateYield)

		api.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Get("/me", a.handleMe)
			pr.Get("/yields", a.handleListYields)

			pr.Route("/dashboard", func(dr chi.Router) {
				dr.Post("/", a.handleDashboard)
				dr.Get("/filters", a.handleFilters)
				dr.Post("/report", a.handleReport)
			})

			pr.Route("/projection", func(jr chi.Router) {
				jr.Post("/", a.handleProjection)
				jr.Get("/filters", a.handleProjectionFilters)
			})
		})
	})

	return r
}

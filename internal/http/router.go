package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/daybillhq/daybill/internal/http/client"
	"github.com/daybillhq/daybill/internal/http/invoice"
	"github.com/daybillhq/daybill/internal/http/project"
	"github.com/daybillhq/daybill/internal/http/workday"
)

func New(
	clientsV1 *client.Handler,
	projectsV1 *project.Handler,
	workdaysV1 *workday.Handler,
	invoicesV1 *invoice.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Route("/{projectID}/workdays", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				workdaysV1.Routes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				projectsV1.Routes(r)
			})
		})

		r.Route("/invoices", invoicesV1.Routes)
	})

	return router
}

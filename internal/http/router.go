package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pmiguelc/transita/internal/auth"
	exportHandler "github.com/pmiguelc/transita/internal/http/export"
	manifestHandler "github.com/pmiguelc/transita/internal/http/manifest"
	transferHandler "github.com/pmiguelc/transita/internal/http/transfer"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func New(
	transfersV1 *transferHandler.Handler,
	manifestV1 *manifestHandler.Handler,
	exportV1 *exportHandler.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/transfers", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transfersV1.Routes(r)
			})

			// Multipart manifest upload lives outside the JSON-only group.
			r.Route("/{id}/inventory/import", manifestV1.Routes)
		})

		r.Route("/export", func(r chi.Router) {
			exportV1.Routes(r)
		})
	})

	return router
}

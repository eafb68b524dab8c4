package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stockpot-app/stockpot/internal/http/history"
	"github.com/stockpot-app/stockpot/internal/http/ingest"
	stockpotmw "github.com/stockpot-app/stockpot/internal/http/middleware"
	"github.com/stockpot-app/stockpot/internal/http/triage"
)

func New(
	jwtSecret string,
	ingestV1 *ingest.Handler,
	triageV1 *triage.Handler,
	historyV1 *history.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(stockpotmw.Auth(jwtSecret))

		r.Route("/imports", ingestV1.Routes)

		r.Route("/triage", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			triageV1.Routes(r)
		})

		historyV1.Routes(r)
	})

	return router
}

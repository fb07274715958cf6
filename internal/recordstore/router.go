package recordstore

import (
	"net/http"

	"covid-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter wires the record store routes. Everything under /api/v2
// requires the shared API key; /health does not.
func NewRouter(handler *Handler, apiKey string, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Route("/api/v2", func(r chi.Router) {
		r.Use(middleware.APIKey(apiKey, logger))

		r.Post("/user/login", handler.Login)
		r.Post("/user/verify-token", handler.VerifyToken)

		r.Get("/{collection}", handler.List)
		r.Post("/{collection}", handler.Create)
		r.Get("/{collection}/{id}", handler.GetByID)
		r.Patch("/{collection}/{id}", handler.Patch)
		r.Delete("/{collection}/{id}", handler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

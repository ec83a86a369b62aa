package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"channel-matcher/internal/config"
	matchHnd "channel-matcher/internal/matching/handler"
	"channel-matcher/internal/middleware"
	"channel-matcher/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, h *matchHnd.Handler) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)
	r.Get("/products", h.ListProducts)

	r.Route("/channels/{channel}", func(r chi.Router) {
		r.Post("/mappings", h.UpsertMapping)
		r.Post("/mappings/reset", h.ResetMappings)
		r.Get("/mappings/{title}", h.LookupMapping)
		r.Post("/import", h.ImportBatch)
		r.Post("/import/file", h.ImportFile)
	})

	return r
}

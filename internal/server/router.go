package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lumina-search/lumina/internal/api"
	"github.com/lumina-search/lumina/internal/api/handlers"
	"github.com/lumina-search/lumina/internal/api/middleware"
)

type RouterConfig struct {
	AuthValidator      middleware.AuthValidator
	SearchHandler      *handlers.SearchHandler
	SavedResultHandler *handlers.SavedResultHandler
	StatisticsHandler  *handlers.StatisticsHandler
	EnhanceHandler     *handlers.EnhanceHandler
	UserHandler        *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]interface{}{"success": true, "status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.AuthValidator))

		r.Route("/api/search", func(r chi.Router) {
			r.Post("/", cfg.SearchHandler.Search)
			r.Get("/history", cfg.SearchHandler.GetHistory)
			r.Delete("/history/{id}", cfg.SearchHandler.DeleteHistory)
			r.Post("/save", cfg.SavedResultHandler.Save)
			r.Get("/saved", cfg.SavedResultHandler.List)
			r.Delete("/saved/{id}", cfg.SavedResultHandler.Delete)
			r.Get("/stats", cfg.StatisticsHandler.Get)
			r.Post("/enhance", cfg.EnhanceHandler.Enhance)
			r.Get("/suggestions", cfg.EnhanceHandler.Suggestions)
			r.Get("/faqs", cfg.EnhanceHandler.FAQs)
		})

		r.Route("/api/user", func(r chi.Router) {
			r.Get("/profile", cfg.UserHandler.GetProfile)
			r.Put("/profile", cfg.UserHandler.UpdateProfile)
			r.Get("/preferences", cfg.UserHandler.GetPreferences)
			r.Put("/preferences", cfg.UserHandler.UpdatePreferences)
		})
	})

	return r
}

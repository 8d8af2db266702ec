package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/clearflow/clearflow-cms/internal/auth"
	"github.com/clearflow/clearflow-cms/internal/catalog/categories"
	"github.com/clearflow/clearflow-cms/internal/catalog/products"
	"github.com/clearflow/clearflow-cms/internal/messages"
	"github.com/clearflow/clearflow-cms/internal/news"
	"github.com/clearflow/clearflow-cms/internal/sitecfg"
	"github.com/clearflow/clearflow-cms/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthService     *auth.Service
	AuthHandler     *auth.Handler
	ProductHandler  *products.Handler
	CategoryHandler *categories.Handler
	NewsHandler     *news.Handler
	MessageHandler  *messages.Handler
	SiteCfgHandler  *sitecfg.Handler
	JobHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router. Reads used by the public site stay
// open; every mutation sits behind bearer-token auth.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/products", func(r chi.Router) {
		params.ProductHandler.MountPublic(r)
		r.Group(func(r chi.Router) {
			r.Use(params.AuthService.RequireAuth)
			params.ProductHandler.MountAdmin(r)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		params.CategoryHandler.MountPublic(r)
		r.Group(func(r chi.Router) {
			r.Use(params.AuthService.RequireAuth)
			params.CategoryHandler.MountAdmin(r)
		})
	})

	r.Route("/news", func(r chi.Router) {
		params.NewsHandler.MountPublic(r)
		r.Group(func(r chi.Router) {
			r.Use(params.AuthService.RequireAuth)
			params.NewsHandler.MountAdmin(r)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		params.MessageHandler.MountPublic(r)
		r.Group(func(r chi.Router) {
			r.Use(params.AuthService.RequireAuth)
			params.MessageHandler.MountAdmin(r)
		})
	})

	// Singleton config documents live at fixed paths, not under a resource
	// prefix, matching what the front ends request.
	params.SiteCfgHandler.MountPublic(r)
	r.Group(func(r chi.Router) {
		r.Use(params.AuthService.RequireAuth)
		params.SiteCfgHandler.MountAdmin(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}

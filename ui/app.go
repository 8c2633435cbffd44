package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/config"
)

// App serves the JSON API consumed by the interactive front-end and by
// pipeline callers.
type App struct {
	router   *chi.Mux
	refs     postcode.ReferenceSet
	defaults config.IdentifyConfig
}

// NewApp creates the API application with a preloaded reference set
func NewApp(cfg *config.Config, refs postcode.ReferenceSet) *App {
	app := &App{
		router:   chi.NewRouter(),
		refs:     refs,
		defaults: cfg.Identify,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)
	a.router.Post("/api/identify", a.handleIdentify)
	a.router.Post("/api/convert", a.handleConvert)
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.router
}

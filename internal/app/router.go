package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hestia-rentals/hestia/internal/auth"
	"github.com/hestia-rentals/hestia/internal/messages"
	"github.com/hestia-rentals/hestia/internal/rentals"
	"github.com/hestia-rentals/hestia/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	AuthGate        auth.Middleware
	UsersHandler    *users.Handler
	RentalsHandler  *rentals.Handler
	MessagesHandler *messages.Handler
}

// NewRouter constructs the chi.Router with Hestia defaults.
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

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			params.AuthHandler.MountRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(params.AuthGate.RequireAuth)
				params.AuthHandler.MountProtectedRoutes(r)
			})
		})
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/rentals", params.RentalsHandler.MountRoutes)
		r.Route("/messages", params.MessagesHandler.MountRoutes)
	})

	return r
}

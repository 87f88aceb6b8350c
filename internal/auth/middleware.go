package auth

import (
	"log/slog"
	"net/http"

	"github.com/hestia-rentals/hestia/internal/platform/httpx"
)

// Middleware gates protected routes behind bearer-token authentication.
type Middleware struct {
	logger  *slog.Logger
	service *Service
}

// NewMiddleware constructs the authorization gate.
func NewMiddleware(logger *slog.Logger, service *Service) Middleware {
	return Middleware{logger: logger, service: service}
}

// RequireAuth resolves the bearer token before the wrapped handler runs. On
// failure the specific reason goes to the log only; the client sees one
// generic 401 regardless of whether the header, token or account was at
// fault. On success the resolved user is attached to the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.service.ResolveIdentity(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			if m.logger != nil {
				m.logger.Warn("request rejected",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()))
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

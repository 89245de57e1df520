// internal/profile/routes.go

package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
)

// Routes builds the profile router. It is mounted under the main mux router.
func Routes(handler *Handler, authMiddleware *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, handler, authMiddleware)
	return r
}

// RegisterRoutes registers all profile routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/api/v1/profile", handler.GetMyProfile)
		r.Put("/api/v1/profile", handler.UpdateProfile)
		r.Get("/api/v1/users/{id}/profile", handler.GetUserProfile)
	})
}

// internal/app/features/activities/routes.go
package activities

import (
	"github.com/go-chi/chi/v5"

	"github.com/mealhub/mealhub/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/activities.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireAdmin)
		r.Post("/", h.Create)
		r.Put("/", h.Update)
		r.Patch("/", h.UpdateStatus)
		r.Delete("/", h.Delete)
	})
	return r
}

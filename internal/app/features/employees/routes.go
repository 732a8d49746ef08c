// internal/app/features/employees/routes.go
package employees

import (
	"github.com/go-chi/chi/v5"

	"github.com/mealhub/mealhub/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/employees.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireAdmin)
		r.Post("/", h.Create)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Post("/init", h.Init)
	})
	return r
}

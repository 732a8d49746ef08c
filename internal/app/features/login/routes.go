// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/admin/login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve)
	return r
}

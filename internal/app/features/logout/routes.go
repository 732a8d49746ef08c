// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/admin/logout.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve)
	return r
}

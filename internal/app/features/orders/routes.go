// internal/app/features/orders/routes.go
package orders

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/orders. Everything is
// open: employees place and manage orders without signing in.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
	return r
}

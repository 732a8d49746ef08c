// internal/app/features/report/routes.go
package report

import (
	"github.com/go-chi/chi/v5"

	"github.com/mealhub/mealhub/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/report.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)
	r.Get("/", h.Serve)
	return r
}

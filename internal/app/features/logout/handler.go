// internal/app/features/logout/handler.go

// Package logout serves POST /api/admin/logout.
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mealhub/mealhub/internal/app/system/apiutil"
	"github.com/mealhub/mealhub/internal/app/system/auth"
)

type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sm, Log: logger}
}

// Serve handles POST /api/admin/logout. Signing out an already-signed-out
// client still succeeds; the end state is the same.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("clear admin session failed", zap.Error(err))
		apiutil.Fail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	apiutil.Message(w, "Signed out.")
}

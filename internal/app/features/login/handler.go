// internal/app/features/login/handler.go

// Package login serves POST /api/admin/login. There is a single shared
// admin credential; verifying it establishes a session cookie that the
// auth middleware checks on every protected request afterward. No
// operation trusts the login response itself as proof of anything.
package login

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mealhub/mealhub/internal/app/system/apiutil"
	"github.com/mealhub/mealhub/internal/app/system/auth"
	"github.com/mealhub/mealhub/internal/app/system/inputval"
)

// Handler holds dependencies for the admin login endpoint.
//
// PasswordHash, when set, is a bcrypt hash and wins over Password.
// Password is the plain-text fallback for dev setups; comparison is
// constant-time either way.
type Handler struct {
	SessionMgr   *auth.SessionManager
	PasswordHash string
	Password     string
	Log          *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(sm *auth.SessionManager, passwordHash, password string, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sm, PasswordHash: passwordHash, Password: password, Log: logger}
}

type loginInput struct {
	Password string `json:"password" validate:"required" label:"Password"`
}

type loginResult struct {
	Role string `json:"role"`
}

// Serve handles POST /api/admin/login.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := apiutil.Decode(r, &in); err != nil {
		apiutil.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apiutil.Fail(w, http.StatusBadRequest, res.First())
		return
	}

	if !h.verify(in.Password) {
		h.Log.Warn("admin login rejected", zap.String("remote", r.RemoteAddr))
		apiutil.Fail(w, http.StatusUnauthorized, "Invalid password.")
		return
	}

	if err := h.SessionMgr.SignInAdmin(w, r); err != nil {
		h.Log.Error("establish admin session failed", zap.Error(err))
		apiutil.Fail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	apiutil.OK(w, loginResult{Role: auth.RoleAdmin})
}

func (h *Handler) verify(password string) bool {
	if h.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.Password), []byte(password)) == 1
}

// internal/app/system/auth/auth.go

// Package auth manages the admin session: a signed cookie issued on
// login and verified by middleware on every protected request. This
// replaces the issue-a-token-and-never-check-it pattern; no operation
// trusts a credential it has not verified on this request.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/mealhub/mealhub/internal/app/system/apiutil"
)

// RoleAdmin is the only privileged role in the system. Employees do not
// sign in; they identify themselves by roster selection when ordering.
const RoleAdmin = "admin"

const (
	isAuthKey = "is_authenticated"
	userRole  = "user_role"
)

// SessionUser is what we cache in the session and inject into
// r.Context().
type SessionUser struct {
	Role string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the session user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// SessionManager owns the cookie store and the middleware around it.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. The key
// signs session cookies and must be strong in production; secure
// controls the Secure flag and SameSite mode.
//
// An empty key gets an ephemeral random one, which invalidates all
// sessions on restart. Acceptable in dev, an error waiting to happen in
// prod, hence the refusal when secure is set.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		if secure {
			return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
		}
		sessionKey = string(securecookie.GenerateRandomKey(32))
		logger.Warn("session key not configured; using ephemeral random key")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// LoadSessionUser injects the session user into context if a valid
// session cookie is present. It never rejects a request by itself.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			r = withUser(r, &SessionUser{Role: getString(sess, userRole)})
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without a verified admin session:
// 401 when no session user is present, 403 when the role is wrong.
// This is a JSON API, so both responses carry the standard envelope.
func (sm *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			apiutil.Fail(w, http.StatusUnauthorized, "Sign in required.")
			return
		}
		if u.Role != RoleAdmin {
			apiutil.Fail(w, http.StatusForbidden, "Admin access required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SignInAdmin establishes an admin session on the response.
func (sm *SessionManager) SignInAdmin(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userRole] = RoleAdmin
	return sess.Save(r, w)
}

// SignOut clears the session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// WithTestUser injects a user directly into the request context,
// bypassing the session middleware. For handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

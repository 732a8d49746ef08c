package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/mealhub/mealhub/internal/app/system/auth"
)

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request carrying a JSON body.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AsAdmin injects an admin session user into the request context,
// bypassing the session middleware.
func AsAdmin(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{Role: auth.RoleAdmin})
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body %q does not contain %q", r.Body.String(), expected)
	}
}

// BodyJSON returns the raw response body for ad-hoc decoding.
func (r *ResponseRecorder) BodyJSON() io.Reader {
	return r.Body
}

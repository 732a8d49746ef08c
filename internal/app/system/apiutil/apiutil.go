// internal/app/system/apiutil/apiutil.go

// Package apiutil implements the JSON envelope shared by every API
// endpoint: {"success":true,"data":…} on success and
// {"success":false,"error":…} with an HTTP error status on failure.
package apiutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const maxBodyBytes = 1 << 20 // request bodies are small JSON objects

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK writes a 200 response carrying data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, envelope{Success: true, Data: data})
}

// Message writes a 200 response with a human-facing message and no data.
func Message(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, envelope{Success: true, Message: msg})
}

// Fail writes an error response with the given status.
func Fail(w http.ResponseWriter, status int, msg string) {
	write(w, status, envelope{Success: false, Error: msg})
}

func write(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// Decode reads the request body as JSON into dst. Unknown fields are
// tolerated; malformed or oversized bodies are not.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large")
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

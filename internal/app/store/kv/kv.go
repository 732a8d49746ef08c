// internal/app/store/kv/kv.go

// Package kv is the persistence layer: a key-value store holding whole
// JSON collection documents. Every read returns the full document and
// every write replaces it, so mutations are read-modify-write cycles.
//
// To keep those cycles safe under concurrent writers, documents carry a
// version and writes can be made conditional on it (SetIfVersion). The
// Update helper wraps the full compare-and-swap retry loop.
package kv

import (
	"context"
	"errors"
)

// ErrUnavailable wraps backend I/O failures (store unreachable, network
// errors). Callers use errors.Is to distinguish infrastructure failure
// from business-rule rejection.
var ErrUnavailable = errors.New("key-value store unavailable")

// ErrVersionMismatch is returned by SetIfVersion when the document
// changed since it was read. Update retries on it internally.
var ErrVersionMismatch = errors.New("document version changed")

// Versioned pairs a document with the version observed at read time.
type Versioned struct {
	Value   string
	Version int64
}

// Store is a key-value store of UTF-8 JSON documents.
//
// Version semantics: a key that does not exist has version 0. Every
// successful write increments the version. SetIfVersion with version 0
// therefore means "create only if absent".
type Store interface {
	// Get returns the document at key, reporting whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// GetVersioned returns the document and its current version.
	GetVersioned(ctx context.Context, key string) (Versioned, bool, error)

	// Set unconditionally replaces the document at key.
	Set(ctx context.Context, key, value string) error

	// SetIfVersion replaces the document only if its current version
	// matches. Returns ErrVersionMismatch otherwise.
	SetIfVersion(ctx context.Context, key, value string, version int64) error

	// Delete removes the document at key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error
}

// internal/app/store/kv/update.go
package kv

import (
	"context"
	"errors"
	"fmt"
)

// updateAttempts bounds the CAS retry loop. Every failed attempt means
// another writer committed, so a writer can only be displaced as many
// times as there are concurrent writers; exhausting this many retries
// indicates pathological contention rather than normal load.
const updateAttempts = 32

// ErrNoChange aborts an Update cycle without writing. A mutate that
// finds nothing to do returns it so the document is left exactly as
// read; in particular, an absent document stays absent.
var ErrNoChange = errors.New("no change")

// Update runs a read-modify-write cycle against key under optimistic
// concurrency control. mutate receives the current document (and whether
// it exists) and returns the replacement; returning an error aborts the
// cycle and is passed through to the caller unchanged.
//
// If another writer lands between the read and the conditional write,
// the cycle re-reads and re-runs mutate, so invariant checks inside
// mutate always see the latest document. Returning ErrNoChange ends
// the cycle successfully without writing anything.
func Update(ctx context.Context, s Store, key string, mutate func(current string, found bool) (string, error)) error {
	var lastErr error
	for i := 0; i < updateAttempts; i++ {
		doc, found, err := s.GetVersioned(ctx, key)
		if err != nil {
			return err
		}

		next, err := mutate(doc.Value, found)
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.SetIfVersion(ctx, key, next, doc.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrVersionMismatch) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("update of %q exhausted retries: %w", key, lastErr)
}

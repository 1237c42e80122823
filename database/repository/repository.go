// Package repository holds the sentinel errors shared by every store
// implementation. Concrete repositories live in the sub-packages, with
// MongoDB and in-memory variants behind the same interfaces.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert or update violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
	// ErrStale is returned when a conditional update matched nothing because
	// the stored state moved on.
	ErrStale = errors.New("stale write")
)

// DefaultTimeout bounds single-document store calls.
const DefaultTimeout = 5 * time.Second

// ListTimeout bounds cursor-based store calls.
const ListTimeout = 10 * time.Second

// WithTimeout derives a bounded context from the caller's.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// Translate maps driver errors onto the sentinels above.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

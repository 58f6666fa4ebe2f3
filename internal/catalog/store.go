package catalog

import (
	"context"
	"errors"
)

var (
	// ErrCorruptStore means the backing file exists but does not parse as
	// a JSON array of courses.
	ErrCorruptStore = errors.New("course catalog is not valid JSON")

	// ErrDuplicateCode is reported only by backends that enforce
	// uniqueness of the course code (postgres).
	ErrDuplicateCode = errors.New("course code already exists")
)

// Store is durable storage for the ordered course sequence. LoadAll on a
// store that was never written to returns an empty slice, not an error.
type Store interface {
	LoadAll(ctx context.Context) ([]Course, error)
	Append(ctx context.Context, c Course) error
	Ping(ctx context.Context) error
}

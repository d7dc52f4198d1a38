package files

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/files_mock.go -package=mock

// Sink stores user avatars and uploads. Paths are slash-separated and
// relative to the sink root.
type Sink interface {
	// EnsureDir makes dir exist. Idempotent.
	EnsureDir(ctx context.Context, dir string) error

	// Write stores the content of r at path, replacing any previous content.
	Write(ctx context.Context, path string, r io.Reader) error

	// Remove deletes the object at path. A missing object is not an error.
	Remove(ctx context.Context, path string) error

	// RemoveAll deletes dir and everything below it. A missing dir is not an
	// error.
	RemoveAll(ctx context.Context, dir string) error

	// List returns the sorted names of the objects directly inside dir.
	// A missing dir yields an empty list.
	List(ctx context.Context, dir string) ([]string, error)
}

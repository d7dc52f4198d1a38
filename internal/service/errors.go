package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-profile-keeper/internal/files"
	"github.com/MKhiriev/go-profile-keeper/internal/store"
)

// Error taxonomy surfaced to the transport layer.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")

	// ErrForbidden is returned when a live session mutates someone else's profile.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated is returned when a mutation has no live session.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// mapStoreError translates store and files errors into the service taxonomy,
// keeping the original error in the chain for logging.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, files.ErrInvalidPath):
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}

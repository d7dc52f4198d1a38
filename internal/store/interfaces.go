package store

import (
	"context"

	"github.com/MKhiriev/go-profile-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CredentialStore persists (username, salted password hash, salt) rows.
// Every call is its own unit of work; nothing is batched across calls.
type CredentialStore interface {
	// Create generates a salt, hashes password and inserts the account.
	// Returns [ErrAlreadyExists] when the username is taken; uniqueness is
	// enforced by the database, not by a pre-check.
	Create(ctx context.Context, username, password string) (models.Account, error)

	// Authenticate reports whether password matches the stored hash.
	// An unknown username yields (false, nil).
	Authenticate(ctx context.Context, username, password string) (bool, error)

	// UpdatePassword re-hashes newPassword with the existing salt.
	// Returns [ErrNotFound] for an unknown username.
	UpdatePassword(ctx context.Context, username, newPassword string) error

	// Delete removes the account row. Returns [ErrNotFound] if absent.
	Delete(ctx context.Context, username string) error
}

// ProfileStore persists profiles keyed by the owning account.
type ProfileStore interface {
	// Create inserts an empty profile with the default avatar for an
	// existing account. Returns [ErrNotFound] if the account is missing and
	// [ErrAlreadyExists] if the profile already exists.
	Create(ctx context.Context, username, filesDir string) (models.Profile, error)

	// Get returns the profile joined with its account. Returns [ErrNotFound]
	// if absent.
	Get(ctx context.Context, username string) (models.Profile, error)

	// Update writes only the supplied fields. Returns [ErrNotFound] if the
	// profile is absent.
	Update(ctx context.Context, username string, update models.ProfileUpdate) error

	// Delete removes the profile row. Filesystem artifacts are the caller's
	// responsibility. Returns [ErrNotFound] if absent.
	Delete(ctx context.Context, username string) error
}

// TokenStore maps a username to its single current session token.
// It is backed by an external process; every call may fail independently of
// the database.
type TokenStore interface {
	// Set stores token as the current one, replacing any previous token.
	Set(ctx context.Context, username, token string) error

	// Get returns the current token or [ErrTokenNotFound].
	Get(ctx context.Context, username string) (string, error)

	// Delete forgets the current token. Deleting a missing token is not an error.
	Delete(ctx context.Context, username string) error
}

package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAlreadyExists is returned when a uniqueness constraint rejects an
	// insert (username taken, profile already present).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound is returned when the targeted account or profile does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrTokenNotFound is returned by [TokenStore.Get] when the username has
	// no current session token.
	ErrTokenNotFound = errors.New("session token not found")

	// ErrStoreUnavailable wraps driver and network errors from the database
	// or the token store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Low-level errors returned (wrapped) when a SQL-level operation fails before
// any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrUnknownDriver is returned for an unsupported database driver.
	ErrUnknownDriver = errors.New("unknown database driver")
)

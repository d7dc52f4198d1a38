package crypto

import "errors"

var (
	// ErrUnknownAlgorithm is returned by NewPasswordHasher for unsupported names.
	ErrUnknownAlgorithm = errors.New("unknown password hash algorithm")

	// ErrHashingPassword wraps failures of the underlying hash primitive
	// (for example bcrypt's 72-byte input limit).
	ErrHashingPassword = errors.New("error hashing password")

	// ErrGeneratingSalt wraps failures of the random source.
	ErrGeneratingSalt = errors.New("error generating salt")
)

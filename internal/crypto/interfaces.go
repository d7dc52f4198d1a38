// Package crypto implements the password side of account credentials:
// salt generation and the pluggable H in H(salt || password).
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher computes and verifies salted password hashes.
//
// Implementations must be safe for concurrent use and must compare hashes
// in constant time.
type PasswordHasher interface {
	// Hash returns the encoded hash of salt || password.
	Hash(salt, password string) (string, error)

	// Verify reports whether password, combined with salt, produces hash.
	Verify(salt, password, hash string) (bool, error)
}

// SaltGenerator produces per-account salts.
type SaltGenerator interface {
	// Generate returns a fresh salt drawn from a restricted alphanumeric
	// alphabet, so it can be stored in any text column without escaping.
	Generate() (string, error)
}

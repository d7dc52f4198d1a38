// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm names accepted by [NewPasswordHasher].
const (
	AlgorithmSHA256   = "sha256"
	AlgorithmArgon2ID = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// NewPasswordHasher returns the [PasswordHasher] registered under algorithm.
func NewPasswordHasher(algorithm string) (PasswordHasher, error) {
	switch algorithm {
	case AlgorithmSHA256:
		return NewSHA256Hasher(), nil
	case AlgorithmArgon2ID:
		return NewArgon2IDHasher(), nil
	case AlgorithmBcrypt:
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// sha256Hasher is hex(sha256(salt || password)). It keeps hashes written by
// older deployments verifiable.
type sha256Hasher struct{}

// NewSHA256Hasher returns the plain salted SHA-256 hasher.
func NewSHA256Hasher() PasswordHasher {
	return sha256Hasher{}
}

func (sha256Hasher) Hash(salt, password string) (string, error) {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:]), nil
}

func (h sha256Hasher) Verify(salt, password, hash string) (bool, error) {
	computed, _ := h.Hash(salt, password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1, nil
}

// argon2IDHasher derives hex(argon2id(salt || password, salt)).
type argon2IDHasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// NewArgon2IDHasher constructs an Argon2id hasher with the parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewArgon2IDHasher() PasswordHasher {
	return &argon2IDHasher{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
	}
}

func (h *argon2IDHasher) Hash(salt, password string) (string, error) {
	key := argon2.IDKey([]byte(salt+password), []byte(salt), h.time, h.memory, h.threads, h.keyLen)
	return hex.EncodeToString(key), nil
}

func (h *argon2IDHasher) Verify(salt, password, hash string) (bool, error) {
	computed, _ := h.Hash(salt, password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1, nil
}

// bcryptHasher stores bcrypt(hex(sha256(salt || password))). The digest keeps
// the input at 64 bytes, under bcrypt's 72-byte cap for any password length.
// bcrypt embeds its own salt too; the account salt still makes the input unique
// per account.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher with the given cost.
func NewBcryptHasher(cost int) PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(salt, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(salt, password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(salt, password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(salt, password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
}

func bcryptInput(salt, password string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}

package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// saltAlphabet is 0-9 followed by a-z.
const saltAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DefaultSaltLength is the salt length used when none is configured.
const DefaultSaltLength = 10

type saltGenerator struct {
	length int
}

// NewSaltGenerator returns a [SaltGenerator] producing salts of the given
// length. Non-positive lengths fall back to [DefaultSaltLength].
func NewSaltGenerator(length int) SaltGenerator {
	if length <= 0 {
		length = DefaultSaltLength
	}
	return &saltGenerator{length: length}
}

func (g *saltGenerator) Generate() (string, error) {
	alphabetLen := big.NewInt(int64(len(saltAlphabet)))

	salt := make([]byte, g.length)
	for i := range salt {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrGeneratingSalt, err)
		}
		salt[i] = saltAlphabet[n.Int64()]
	}

	return string(salt), nil
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// TokenGenerator issues opaque session tokens: 128 random bits (UUID v4)
// rendered as 32 lowercase hex characters.
type TokenGenerator struct{}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

func (g *TokenGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(id.String(), "-", ""), nil
}

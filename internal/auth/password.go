package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted one-way password hashes.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher with the default bcrypt cost.
func NewHasher() Hasher {
	return Hasher{cost: bcrypt.DefaultCost}
}

// Hash returns a salted bcrypt hash of plaintext. Each call produces a
// different hash for the same input. Empty input is rejected.
func (h Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("auth: password must not be empty")
	}
	cost := h.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatched or
// malformed stored hash verifies as false, never as an error.
func (h Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

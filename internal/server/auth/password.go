package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and checks account secrets with bcrypt. The hash
// embeds its own random salt and cost.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher returns a hasher for the given bcrypt cost. It precomputes
// a throwaway hash used to equalise timing when an account does not exist.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("fittrack-dummy-secret"), cost)
	if err != nil {
		return nil, err
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash returns the bcrypt hash of secret.
func (h *PasswordHasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether secret matches hash. A malformed hash counts as a
// mismatch.
func (h *PasswordHasher) Compare(hash, secret string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// CompareDummy burns the same amount of work as Compare against a real hash.
// The result is discarded.
func (h *PasswordHasher) CompareDummy(secret string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(secret))
}

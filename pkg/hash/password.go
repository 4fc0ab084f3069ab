package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher provides hashing logic to securely store admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

// BcryptHasher hashes passwords with bcrypt. The salt is embedded in the
// produced hash.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Compare(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

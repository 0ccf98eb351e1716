package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/nestly-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a storable hash of password.
	Hash(password string) (string, error)

	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, ErrPasswordMismatch on a mismatch.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a new BcryptHasher. Costs outside bcrypt's range
// fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements PasswordHasher. Unusable hashes never match.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	user := domain.User{HashedPassword: hashedPassword}
	if !user.HasUsablePassword() {
		return ErrPasswordMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}

// UnusablePassword returns a hash value no password can match, for
// accounts created through social login.
func UnusablePassword() string {
	return domain.UnusablePasswordPrefix + uuid.New().String()
}

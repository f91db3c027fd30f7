package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// passwordService implements PasswordService using Argon2id. Hashing is
// deliberately expensive; it is the only CPU-heavy blocking operation in the
// auth path besides database access.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService with the interactive Argon2id
// policy, balancing login latency against brute-force cost.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordService{hasher: hasher}, nil
}

// Hash hashes a plain text password using Argon2id.
func (p *passwordService) Hash(plainPassword string) (string, error) {
	hashed, err := p.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// Compare performs a constant-time comparison between a plain password and
// its stored hash.
func (p *passwordService) Compare(plainPassword string, hashedPassword string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}

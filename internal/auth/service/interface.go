// Package service provides the cryptographic services behind authentication:
// the signed bearer token codec and the password hasher.
package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/auth/domain"
	"github.com/afga-dev/attendify-api/internal/authz"
)

// TokenClaims is the verified payload of a parsed bearer token.
type TokenClaims struct {
	// UserID is the token subject.
	UserID uuid.UUID

	// Roles held by the subject when the token was issued.
	Roles []authz.Role

	// Kind distinguishes access from refresh tokens.
	Kind domain.TokenKind

	// ExpiresAt is the embedded expiry.
	ExpiresAt time.Time
}

// TokenCodec creates and parses signed bearer tokens. Implementations are
// pure cryptographic transforms: no I/O, no persistence lookups, safe for
// concurrent use without locking.
type TokenCodec interface {
	// Issue produces a signed, self-contained token embedding the subject,
	// roles, kind, issued-at and expiry.
	Issue(userID uuid.UUID, roles []authz.Role, kind domain.TokenKind, ttl time.Duration) (string, error)

	// Parse verifies the signature and embedded expiry and returns the
	// claims. Returns ErrInvalidOrExpiredToken when the signature does not
	// verify, the payload is malformed, or the token has expired.
	Parse(value string) (*TokenClaims, error)
}

// PasswordService hashes and verifies user passwords. Verification is
// constant-time to avoid timing side channels.
type PasswordService interface {
	// Hash hashes a plain text password for storage.
	Hash(plainPassword string) (string, error)

	// Compare reports whether the plain password matches the stored hash.
	Compare(plainPassword string, hashedPassword string) bool
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is the persisted record of an issued refresh token. Rows are never
// deleted, only flagged: the table doubles as revocation list and audit trail.
type Token struct {
	ID        uuid.UUID
	Value     string
	Kind      TokenKind
	Purpose   TokenPurpose
	Revoked   bool
	Expired   bool
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Usable reports whether the row is still acceptable for refresh. The
// cryptographic expiry embedded in the token value is checked separately by
// the codec; this covers the explicit invalidation flags only.
func (t *Token) Usable() bool {
	return !t.Revoked && !t.Expired
}

// AuthTokens is the credential pair returned by register, login and refresh.
// Refresh reuses the presented refresh token rather than rotating it.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
}

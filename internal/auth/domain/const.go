// Package domain defines authentication domain models: persisted tokens,
// session outcomes, and the auth error taxonomy.
package domain

// TokenKind distinguishes short-lived access tokens from revocable refresh tokens.
type TokenKind string

const (
	// AccessKind tokens authorize individual API calls. They are stateless
	// and never persisted.
	AccessKind TokenKind = "ACCESS"

	// RefreshKind tokens mint new access tokens. They are always persisted
	// so they can be revoked.
	RefreshKind TokenKind = "REFRESH"
)

// TokenPurpose classifies why a token was issued. Present for extensibility;
// current logic only issues session tokens.
type TokenPurpose string

// SessionPurpose marks tokens issued for a login session.
const SessionPurpose TokenPurpose = "SESSION"

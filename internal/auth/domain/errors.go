package domain

import (
	"github.com/afga-dev/attendify-api/internal/errors"
)

// Authentication errors.
var (
	// ErrTokenNotFound indicates no stored token row matches the presented value.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidCredentials indicates an unknown email or a password mismatch.
	// The same error is returned for both so responses never reveal whether
	// the email exists.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrMalformedHeader indicates a missing Authorization header or one
	// without the expected Bearer scheme prefix.
	ErrMalformedHeader = errors.Wrap(errors.ErrInvalidInput, "malformed authorization header")

	// ErrInvalidOrExpiredToken indicates a token that fails signature or
	// expiry checks, has no stored row, or whose row is revoked or expired.
	ErrInvalidOrExpiredToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")
)

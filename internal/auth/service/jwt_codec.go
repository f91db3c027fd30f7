package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/auth/domain"
	"github.com/afga-dev/attendify-api/internal/authz"
	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// sessionClaims is the JWT payload for both access and refresh tokens.
type sessionClaims struct {
	Kind  string   `json:"kind"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// jwtCodec implements TokenCodec using HS256 signed JWTs. The signing key is
// provided once at construction and never changes; rotating it invalidates
// every previously issued token.
type jwtCodec struct {
	signingKey []byte
	issuer     string
}

// NewJWTCodec creates a TokenCodec signing with the given symmetric key.
func NewJWTCodec(signingKey string, issuer string) (TokenCodec, error) {
	if signingKey == "" {
		return nil, apperrors.New("jwt signing key is required")
	}
	return &jwtCodec{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}, nil
}

// Issue produces a signed token embedding subject, roles, kind, issued-at,
// expiry and a unique jti.
func (c *jwtCodec) Issue(
	userID uuid.UUID,
	roles []authz.Role,
	kind domain.TokenKind,
	ttl time.Duration,
) (string, error) {
	if ttl <= 0 {
		return "", apperrors.New("token ttl must be greater than zero")
	}

	now := time.Now().UTC()
	claims := sessionClaims{
		Kind:  string(kind),
		Roles: authz.RoleNames(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.Must(uuid.NewV7()).String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Parse verifies the signature, issuer and expiry and returns the claims.
// Every failure mode collapses to ErrInvalidOrExpiredToken so callers leak
// nothing about why a token was rejected.
func (c *jwtCodec) Parse(value string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		value,
		&sessionClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, domain.ErrInvalidOrExpiredToken
			}
			return c.signingKey, nil
		},
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	kind := domain.TokenKind(claims.Kind)
	if kind != domain.AccessKind && kind != domain.RefreshKind {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	roles, err := authz.ParseRoles(claims.Roles)
	if err != nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	return &TokenClaims{
		UserID:    subject,
		Roles:     roles,
		Kind:      kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Package usecase implements the session and authentication business logic:
// registration, login, token refresh, logout, and the credential change
// operations that revoke outstanding sessions.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/auth/domain"
	"github.com/afga-dev/attendify-api/internal/authz"
	userDomain "github.com/afga-dev/attendify-api/internal/user/domain"
)

// AuthUseCase defines the session orchestration operations.
type AuthUseCase interface {
	// Register creates a user with the default USER role and returns a fresh
	// access/refresh token pair. Fails with ErrUserAlreadyExists when the
	// email is taken; no token rows are created for a rejected attempt.
	Register(ctx context.Context, input *domain.RegisterInput) (*domain.AuthTokens, error)

	// RegisterWithRoles creates a user with an explicit role set. The caller
	// must already hold the force-create permission; that check belongs to
	// the route guard, not this operation.
	RegisterWithRoles(ctx context.Context, input *domain.RegisterWithRolesInput) (*domain.AuthTokens, error)

	// Login verifies credentials and returns a new token pair. Prior
	// sessions stay usable; concurrent sessions are allowed.
	Login(ctx context.Context, input *domain.LoginInput) (*domain.AuthTokens, error)

	// Refresh mints a new access token for the subject of a usable refresh
	// token. The refresh token itself is not rotated or consumed.
	Refresh(ctx context.Context, authorizationHeader string) (string, error)

	// Logout revokes the presented refresh token. The tri-state result
	// distinguishes success, unknown token, and already revoked.
	Logout(ctx context.Context, authorizationHeader string) (domain.LogoutResult, error)

	// ChangePassword replaces the caller's password hash and revokes every
	// active refresh token the caller owns, as one atomic unit.
	ChangePassword(ctx context.Context, principal *authz.Principal, input *domain.ChangePasswordInput) (domain.ChangePasswordResult, error)

	// ChangeEmail replaces the caller's email and revokes every active
	// refresh token the caller owns, as one atomic unit.
	ChangeEmail(ctx context.Context, principal *authz.Principal, input *domain.ChangeEmailInput) (domain.ChangeEmailResult, error)

	// Authenticate resolves the principal from a bearer access token. Pure
	// codec verification, no store lookup.
	Authenticate(ctx context.Context, authorizationHeader string) (*authz.Principal, error)
}

// TokenRepository defines the persisted token store operations.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	Update(ctx context.Context, token *domain.Token) error
	GetByValue(ctx context.Context, value string) (*domain.Token, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Token, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// UserRepository defines the user persistence operations this package needs.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
	Update(ctx context.Context, user *userDomain.User) error
}

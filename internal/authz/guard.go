package authz

import (
	"github.com/google/uuid"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// Authorization errors. ErrAuthenticationRequired maps to 401 at the
// transport boundary, ErrAuthorizationDenied to 403; the guard never
// conflates the two.
var (
	// ErrAuthenticationRequired indicates no valid principal was presented.
	ErrAuthenticationRequired = apperrors.Wrap(apperrors.ErrUnauthorized, "authentication required")

	// ErrAuthorizationDenied indicates a valid principal lacking the required permission.
	ErrAuthorizationDenied = apperrors.Wrap(apperrors.ErrForbidden, "permission denied")
)

// Principal is the resolved identity derived from a verified bearer token.
// It is built per request, passed explicitly, and never outlives the request
// that produced it.
type Principal struct {
	UserID      uuid.UUID
	Roles       []Role
	Permissions PermissionSet
}

// NewPrincipal builds a principal with the permission union of the given roles.
func NewPrincipal(userID uuid.UUID, roles []Role) *Principal {
	return &Principal{
		UserID:      userID,
		Roles:       roles,
		Permissions: PermissionsOf(roles),
	}
}

// Authorize checks that the principal holds the required permission.
// Returns ErrAuthenticationRequired for a nil principal and
// ErrAuthorizationDenied for a principal lacking the permission.
func Authorize(principal *Principal, required Permission) error {
	if principal == nil {
		return ErrAuthenticationRequired
	}
	if !principal.Permissions.Has(required) {
		return ErrAuthorizationDenied
	}
	return nil
}

// AuthorizeOwned applies the ownership rule for resource-scoped operations:
// the principal is allowed iff it holds the force permission, or it owns the
// resource and holds the own permission.
func AuthorizeOwned(principal *Principal, ownerID uuid.UUID, ownPermission, forcePermission Permission) error {
	if principal == nil {
		return ErrAuthenticationRequired
	}
	if principal.Permissions.Has(forcePermission) {
		return nil
	}
	if principal.UserID == ownerID && principal.Permissions.Has(ownPermission) {
		return nil
	}
	return ErrAuthorizationDenied
}

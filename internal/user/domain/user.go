// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/errors"
)

// User represents a user in the system
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	Roles     []authz.Role
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deleted reports whether the user has been soft deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}

// Permissions returns the effective permission set derived from the user's roles.
func (u *User) Permissions() authz.PermissionSet {
	return authz.PermissionsOf(u.Roles)
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUserNotDeleted indicates a restore was attempted on a user that is not deleted.
	ErrUserNotDeleted = errors.Wrap(errors.ErrConflict, "user is not deleted")

	// ErrInvalidEmail indicates the email format is invalid.
	ErrInvalidEmail = errors.Wrap(errors.ErrInvalidInput, "invalid email format")

	// ErrInvalidPassword indicates the password doesn't meet requirements.
	ErrInvalidPassword = errors.Wrap(errors.ErrInvalidInput, "invalid password")
)

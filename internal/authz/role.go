package authz

import (
	"strings"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// Role is a named group of permissions assigned to users.
type Role string

const (
	// RoleUser is the default role for self-registered users.
	RoleUser Role = "USER"

	// RoleManager can create and manage categories, events and registrations it owns.
	RoleManager Role = "MANAGER"

	// RoleAdmin holds every permission.
	RoleAdmin Role = "ADMIN"
)

// ErrUnknownRole indicates a role name that is not part of the static table.
var ErrUnknownRole = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown role")

// rolePermissions is the static Role to Permission table. Read-only after
// package initialization. ADMIN's set is computed from allPermissions so a
// new permission constant is automatically admin-granted.
var rolePermissions = map[Role]PermissionSet{
	RoleUser: NewPermissionSet(
		RegistrationCreate,
		RegistrationDelete,
	),
	RoleManager: NewPermissionSet(
		CategoryCreate,
		CategoryUpdate,
		CategoryDelete,

		EventCreate,
		EventUpdate,
		EventDelete,

		RegistrationReadByEvent,
		RegistrationCreate,
		RegistrationCheckIn,
		RegistrationDelete,
	),
	RoleAdmin: NewPermissionSet(allPermissions...),
}

// PermissionsOf returns the union of the permission sets of all given roles.
// Unknown roles contribute nothing.
func PermissionsOf(roles []Role) PermissionSet {
	union := make(PermissionSet)
	for _, role := range roles {
		for permission := range rolePermissions[role] {
			union[permission] = struct{}{}
		}
	}
	return union
}

// ParseRole converts a role name to a Role. Returns ErrUnknownRole for names
// outside the static table.
func ParseRole(name string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(name))) {
	case RoleUser:
		return RoleUser, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// ParseRoles converts a list of role names, failing on the first unknown name.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// RoleNames converts roles back to their string names.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}

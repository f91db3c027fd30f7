// Package authz defines the role-based permission model and the authorization
// guard used by every protected endpoint.
//
// The Role to Permission mapping is a fixed, compile-time table: it is built
// once at package initialization and never mutated afterwards, so it is safe
// for unsynchronized concurrent reads. Changing the table requires a new
// deployment, not a data migration.
package authz

// Permission is a fine-grained capability required by a protected operation.
type Permission string

const (
	// Category permissions.
	CategoryCreate          Permission = "CATEGORY_CREATE"
	CategoryUpdate          Permission = "CATEGORY_UPDATE"
	CategoryDelete          Permission = "CATEGORY_DELETE"
	CategoryRestore         Permission = "CATEGORY_RESTORE"
	CategoryReadDeleted     Permission = "CATEGORY_READ_DELETED"
	CategoryReadWithDeleted Permission = "CATEGORY_READ_WITH_DELETED"

	// Event permissions. The FORCE variants allow operating on events owned
	// by another user.
	EventCreate          Permission = "EVENT_CREATE"
	EventUpdate          Permission = "EVENT_UPDATE"
	EventDelete          Permission = "EVENT_DELETE"
	EventRestore         Permission = "EVENT_RESTORE"
	EventForceUpdate     Permission = "EVENT_FORCE_UPDATE"
	EventForceDelete     Permission = "EVENT_FORCE_DELETE"
	EventReadDeleted     Permission = "EVENT_READ_DELETED"
	EventReadWithDeleted Permission = "EVENT_READ_WITH_DELETED"

	// Event registration permissions.
	RegistrationCreate          Permission = "EVENT_REGISTRATION_CREATE"
	RegistrationDelete          Permission = "EVENT_REGISTRATION_DELETE"
	RegistrationForceDelete     Permission = "EVENT_REGISTRATION_FORCE_DELETE"
	RegistrationRestore         Permission = "EVENT_REGISTRATION_RESTORE"
	RegistrationCheckIn         Permission = "EVENT_REGISTRATION_CHECKIN"
	RegistrationReadByEvent     Permission = "EVENT_REGISTRATION_READ_BY_EVENT"
	RegistrationForceRead       Permission = "EVENT_REGISTRATION_FORCE_READ"
	RegistrationReadDeleted     Permission = "EVENT_REGISTRATION_READ_DELETED"
	RegistrationReadWithDeleted Permission = "EVENT_REGISTRATION_READ_WITH_DELETED"

	// User permissions.
	UserForceCreate     Permission = "USER_FORCE_CREATE"
	UserForceRead       Permission = "USER_FORCE_READ"
	UserForceUpdate     Permission = "USER_FORCE_UPDATE"
	UserForceDelete     Permission = "USER_FORCE_DELETE"
	UserRestore         Permission = "USER_RESTORE"
	UserReadAll         Permission = "USER_READ_ALL"
	UserReadDeleted     Permission = "USER_READ_DELETED"
	UserReadWithDeleted Permission = "USER_READ_WITH_DELETED"
)

// allPermissions is the universal permission set, granted in full to ADMIN.
// New permission constants must be added here so ADMIN picks them up.
var allPermissions = []Permission{
	CategoryCreate, CategoryUpdate, CategoryDelete, CategoryRestore,
	CategoryReadDeleted, CategoryReadWithDeleted,

	EventCreate, EventUpdate, EventDelete, EventRestore,
	EventForceUpdate, EventForceDelete, EventReadDeleted, EventReadWithDeleted,

	RegistrationCreate, RegistrationDelete, RegistrationForceDelete,
	RegistrationRestore, RegistrationCheckIn, RegistrationReadByEvent,
	RegistrationForceRead, RegistrationReadDeleted, RegistrationReadWithDeleted,

	UserForceCreate, UserForceRead, UserForceUpdate, UserForceDelete, UserRestore,
	UserReadAll, UserReadDeleted, UserReadWithDeleted,
}

// PermissionSet is an unordered set of permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(permissions ...Permission) PermissionSet {
	set := make(PermissionSet, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given permission.
func (s PermissionSet) Has(permission Permission) bool {
	_, ok := s[permission]
	return ok
}

// AllPermissions returns a copy of the universal permission set.
func AllPermissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

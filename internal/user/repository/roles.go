package repository

import (
	"strings"

	"github.com/afga-dev/attendify-api/internal/authz"
)

// rolesToColumn serializes a role set to its comma-separated column form.
func rolesToColumn(roles []authz.Role) string {
	return strings.Join(authz.RoleNames(roles), ",")
}

// rolesFromColumn parses the comma-separated roles column.
func rolesFromColumn(column string) ([]authz.Role, error) {
	if column == "" {
		return nil, nil
	}
	return authz.ParseRoles(strings.Split(column, ","))
}

package domain

import "github.com/afga-dev/attendify-api/internal/authz"

// RegisterInput contains the input data for self-service registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterWithRolesInput contains the input data for admin-driven registration
// with an explicit role set.
type RegisterWithRolesInput struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Roles    []authz.Role `json:"roles"`
}

// LoginInput contains the credentials submitted on login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordInput contains the input data for a password change.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangeEmailInput contains the input data for an email change.
type ChangeEmailInput struct {
	CurrentEmail string `json:"current_email"`
	NewEmail     string `json:"new_email"`
}

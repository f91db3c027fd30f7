// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// passwordStrength is the password policy applied to every endpoint that
// accepts a new password.
var passwordStrength = customValidation.PasswordStrength{
	MinLength:      8,
	RequireUpper:   true,
	RequireLower:   true,
	RequireNumber:  true,
	RequireSpecial: true,
}

// RegisterRequest contains the parameters for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			passwordStrength,
		),
	)
}

// RegisterWithRolesRequest contains the parameters for creating an account
// with an explicit role set. Reaching the handler requires the force-create
// permission.
type RegisterWithRolesRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Validate checks if the register with roles request is valid.
func (r *RegisterWithRolesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			passwordStrength,
		),
		validation.Field(&r.Roles,
			validation.Required,
			validation.Length(1, 0),
		),
	)
}

// LoginRequest contains the credentials for an authentication attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ChangePasswordRequest contains the parameters for replacing the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OldPassword,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.NewPassword,
			validation.Required,
			passwordStrength,
		),
	)
}

// ChangeEmailRequest contains the parameters for replacing the caller's email.
type ChangeEmailRequest struct {
	CurrentEmail string `json:"current_email"`
	NewEmail     string `json:"new_email"`
}

// Validate checks if the change email request is valid.
func (r *ChangeEmailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentEmail,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.NewEmail,
			validation.Required,
			customValidation.Email,
		),
	)
}

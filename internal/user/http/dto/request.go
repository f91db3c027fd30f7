// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// AssignRolesRequest contains the parameters for replacing a user's role set.
type AssignRolesRequest struct {
	Roles []string `json:"roles"`
}

// Validate checks if the assign roles request is valid.
func (r *AssignRolesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Roles,
			validation.Required,
			validation.Length(1, 0),
		),
	)
}

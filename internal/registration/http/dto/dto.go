// Package dto defines data transfer objects for registration HTTP endpoints.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/registration/domain"
)

// RegistrationResponse represents a registration in API responses
type RegistrationResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	EventID   uuid.UUID  `json:"event_id"`
	CheckedIn bool       `json:"checked_in"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MapRegistrationToResponse converts a domain registration to its response representation
func MapRegistrationToResponse(registration *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        registration.ID,
		UserID:    registration.UserID,
		EventID:   registration.EventID,
		CheckedIn: registration.CheckedIn,
		DeletedAt: registration.DeletedAt,
		CreatedAt: registration.CreatedAt,
		UpdatedAt: registration.UpdatedAt,
	}
}

// ListRegistrationsResponse wraps a page of registrations
type ListRegistrationsResponse struct {
	Data []RegistrationResponse `json:"data"`
}

// MapRegistrationsToListResponse converts domain registrations to a list response
func MapRegistrationsToListResponse(registrations []*domain.Registration) ListRegistrationsResponse {
	data := make([]RegistrationResponse, len(registrations))
	for i, registration := range registrations {
		data[i] = MapRegistrationToResponse(registration)
	}
	return ListRegistrationsResponse{Data: data}
}

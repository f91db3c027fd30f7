// Package dto defines data transfer objects for event HTTP endpoints.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

// Validate validates the create event request
func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required, customValidation.NotBlank),
		validation.Field(&r.StartDate, validation.Required),
		validation.Field(&r.EndDate, validation.Required),
		validation.Field(&r.Location, validation.Required, validation.In("ONLINE", "PRESENTIAL", "HYBRID")),
		validation.Field(&r.Capacity, validation.Required, validation.Min(1)),
	)
}

// UpdateEventRequest represents the request to update an event. The full
// representation is replaced, including the status.
type UpdateEventRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	Status      string      `json:"status"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

// Validate validates the update event request
func (r UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required, customValidation.NotBlank),
		validation.Field(&r.StartDate, validation.Required),
		validation.Field(&r.EndDate, validation.Required),
		validation.Field(&r.Location, validation.Required, validation.In("ONLINE", "PRESENTIAL", "HYBRID")),
		validation.Field(&r.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&r.Status, validation.Required, validation.In("DRAFT", "PUBLISHED", "CANCELED", "COMPLETED")),
	)
}

// Package domain defines event entities and business rules.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// Status is the lifecycle state of an event.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusCanceled, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrUnknownEventStatus
	}
}

// Location is the delivery format of an event.
type Location string

const (
	LocationOnline     Location = "ONLINE"
	LocationPresential Location = "PRESENTIAL"
	LocationHybrid     Location = "HYBRID"
)

// ParseLocation converts a raw string into a Location.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationOnline, LocationPresential, LocationHybrid:
		return Location(s), nil
	default:
		return "", ErrUnknownLocation
	}
}

// Event represents a scheduled event owned by the user who created it.
type Event struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    Location    `json:"location"`
	Capacity    int         `json:"capacity"`
	Status      Status      `json:"status"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Deleted reports whether the event has been soft deleted.
func (e *Event) Deleted() bool {
	return e.DeletedAt != nil
}

// CreateEventInput contains the data needed to create an event.
type CreateEventInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

// UpdateEventInput contains the data needed to update an event. All fields
// are replaced; the handler binds the full representation.
type UpdateEventInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	Status      string      `json:"status"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

// ListEventsFilter narrows event listings. Nil fields are ignored.
type ListEventsFilter struct {
	CategoryID *uuid.UUID
	Status     *Status
}

// Event domain errors.
var (
	ErrEventNotFound      = apperrors.Wrap(apperrors.ErrNotFound, "event not found")
	ErrEventNotDeleted    = apperrors.Wrap(apperrors.ErrConflict, "event is not deleted")
	ErrUnknownEventStatus = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown event status")
	ErrUnknownLocation    = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown event location")
	ErrInvalidEventPeriod = apperrors.Wrap(apperrors.ErrInvalidInput, "event end date must be after start date")
	ErrCategoryNotFound   = apperrors.Wrap(apperrors.ErrNotFound, "event category not found")
)

// Package domain defines event registration entities and business rules.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// Registration represents a user's attendance registration for an event.
// A user holds at most one live registration per event.
type Registration struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	EventID   uuid.UUID  `json:"event_id"`
	CheckedIn bool       `json:"checked_in"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Deleted reports whether the registration has been soft deleted.
func (r *Registration) Deleted() bool {
	return r.DeletedAt != nil
}

// Registration domain errors.
var (
	ErrRegistrationNotFound   = apperrors.Wrap(apperrors.ErrNotFound, "registration not found")
	ErrRegistrationNotDeleted = apperrors.Wrap(apperrors.ErrConflict, "registration is not deleted")
	ErrAlreadyRegistered      = apperrors.Wrap(apperrors.ErrConflict, "user is already registered for this event")
	ErrAlreadyCheckedIn       = apperrors.Wrap(apperrors.ErrConflict, "registration is already checked in")
	ErrEventNotPublished      = apperrors.Wrap(apperrors.ErrConflict, "event is not open for registration")
	ErrEventFull              = apperrors.Wrap(apperrors.ErrConflict, "event has reached its capacity")
)

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/event/domain"
)

// EventResponse represents an event in API responses
type EventResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	Status      string      `json:"status"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// MapEventToResponse converts a domain event to its response representation
func MapEventToResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		Location:    string(event.Location),
		Capacity:    event.Capacity,
		Status:      string(event.Status),
		CreatedBy:   event.CreatedBy,
		CategoryIDs: event.CategoryIDs,
		DeletedAt:   event.DeletedAt,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// ListEventsResponse wraps a page of events
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEventsToListResponse converts domain events to a list response
func MapEventsToListResponse(events []*domain.Event) ListEventsResponse {
	data := make([]EventResponse, len(events))
	for i, event := range events {
		data[i] = MapEventToResponse(event)
	}
	return ListEventsResponse{Data: data}
}

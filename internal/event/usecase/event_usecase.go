// Package usecase implements event management business logic.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/database"
	"github.com/afga-dev/attendify-api/internal/event/domain"

	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// UseCase defines the contract for event business operations.
type UseCase interface {
	Create(ctx context.Context, principal *authz.Principal, input *domain.CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, filter domain.ListEventsFilter, limit, offset int) ([]*domain.Event, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error)
	Update(ctx context.Context, principal *authz.Principal, id uuid.UUID, input *domain.UpdateEventInput) (*domain.Event, error)
	SoftDelete(ctx context.Context, principal *authz.Principal, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

// EventRepository defines the contract for event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, filter domain.ListEventsFilter, limit, offset int) ([]*domain.Event, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// EventUseCase orchestrates event operations. Writes that touch both the
// event row and its category links run inside a transaction.
type EventUseCase struct {
	txManager database.TxManager
	eventRepo EventRepository
}

// NewEventUseCase creates a new EventUseCase
func NewEventUseCase(txManager database.TxManager, eventRepo EventRepository) UseCase {
	return &EventUseCase{
		txManager: txManager,
		eventRepo: eventRepo,
	}
}

// Create validates the input and persists a new event owned by the principal.
// New events always start in DRAFT.
func (uc *EventUseCase) Create(ctx context.Context, principal *authz.Principal, input *domain.CreateEventInput) (*domain.Event, error) {
	if principal == nil {
		return nil, authz.ErrAuthenticationRequired
	}

	location, err := validateEventFields(
		input.Title, input.Description, input.Location,
		input.Capacity, input.StartDate, input.EndDate,
	)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Location:    location,
		Capacity:    input.Capacity,
		Status:      domain.StatusDraft,
		CreatedBy:   principal.UserID,
		CategoryIDs: input.CategoryIDs,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.eventRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// GetByID retrieves an event
func (uc *EventUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return uc.eventRepo.GetByID(ctx, id)
}

// List retrieves events matching the filter with pagination
func (uc *EventUseCase) List(ctx context.Context, filter domain.ListEventsFilter, limit, offset int) ([]*domain.Event, error) {
	return uc.eventRepo.List(ctx, filter, limit, offset)
}

// ListDeleted retrieves soft-deleted events with pagination
func (uc *EventUseCase) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	return uc.eventRepo.ListDeleted(ctx, limit, offset)
}

// ListWithDeleted retrieves events with pagination regardless of soft-delete state
func (uc *EventUseCase) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	return uc.eventRepo.ListWithDeleted(ctx, limit, offset)
}

// Update replaces the mutable fields of an event. The principal must own the
// event and hold EVENT_UPDATE, or hold EVENT_FORCE_UPDATE for someone else's
// event.
func (uc *EventUseCase) Update(ctx context.Context, principal *authz.Principal, id uuid.UUID, input *domain.UpdateEventInput) (*domain.Event, error) {
	location, err := validateEventFields(
		input.Title, input.Description, input.Location,
		input.Capacity, input.StartDate, input.EndDate,
	)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var event *domain.Event
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		event, err = uc.eventRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := authz.AuthorizeOwned(principal, event.CreatedBy, authz.EventUpdate, authz.EventForceUpdate); err != nil {
			return err
		}

		event.Title = strings.TrimSpace(input.Title)
		event.Description = strings.TrimSpace(input.Description)
		event.StartDate = input.StartDate
		event.EndDate = input.EndDate
		event.Location = location
		event.Capacity = input.Capacity
		event.Status = status
		event.CategoryIDs = input.CategoryIDs

		return uc.eventRepo.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// SoftDelete marks an event as deleted, subject to the ownership rule.
func (uc *EventUseCase) SoftDelete(ctx context.Context, principal *authz.Principal, id uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		event, err := uc.eventRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := authz.AuthorizeOwned(principal, event.CreatedBy, authz.EventDelete, authz.EventForceDelete); err != nil {
			return err
		}

		return uc.eventRepo.SoftDelete(ctx, id)
	})
}

// Restore reverses a soft delete and returns the restored event
func (uc *EventUseCase) Restore(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if err := uc.eventRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return uc.eventRepo.GetByID(ctx, id)
}

func validateEventFields(title, description, location string, capacity int, startDate, endDate time.Time) (domain.Location, error) {
	err := validation.Errors{
		"title":       validation.Validate(title, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		"description": validation.Validate(description, validation.Required, customValidation.NotBlank),
		"capacity":    validation.Validate(capacity, validation.Min(1)),
		"start_date":  validation.Validate(startDate, validation.Required),
		"end_date":    validation.Validate(endDate, validation.Required),
	}.Filter()
	if err != nil {
		return "", customValidation.WrapValidationError(err)
	}

	parsed, err := domain.ParseLocation(location)
	if err != nil {
		return "", err
	}
	if !endDate.After(startDate) {
		return "", domain.ErrInvalidEventPeriod
	}
	return parsed, nil
}

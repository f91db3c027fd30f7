// Package usecase implements event registration business logic.
package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/database"
	"github.com/afga-dev/attendify-api/internal/registration/domain"

	eventDomain "github.com/afga-dev/attendify-api/internal/event/domain"
)

// UseCase defines the contract for registration business operations.
type UseCase interface {
	Register(ctx context.Context, principal *authz.Principal, eventID uuid.UUID) (*domain.Registration, error)
	GetByID(ctx context.Context, principal *authz.Principal, id uuid.UUID) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*domain.Registration, error)
	ListMine(ctx context.Context, principal *authz.Principal, limit, offset int) ([]*domain.Registration, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error)
	CheckIn(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	Cancel(ctx context.Context, principal *authz.Principal, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
}

// RegistrationRepository defines the contract for registration persistence.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *domain.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*domain.Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Registration, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error)
	CountActiveByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	Update(ctx context.Context, registration *domain.Registration) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// EventReader exposes the event lookups registration needs.
type EventReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*eventDomain.Event, error)
}

// RegistrationUseCase orchestrates registration operations.
type RegistrationUseCase struct {
	txManager        database.TxManager
	registrationRepo RegistrationRepository
	eventReader      EventReader
}

// NewRegistrationUseCase creates a new RegistrationUseCase
func NewRegistrationUseCase(txManager database.TxManager, registrationRepo RegistrationRepository, eventReader EventReader) UseCase {
	return &RegistrationUseCase{
		txManager:        txManager,
		registrationRepo: registrationRepo,
		eventReader:      eventReader,
	}
}

// Register signs the principal up for an event. The event must be PUBLISHED
// and below capacity. A previously canceled registration for the same event
// is restored instead of inserting a second row, which would trip the unique
// (user, event) index.
func (uc *RegistrationUseCase) Register(ctx context.Context, principal *authz.Principal, eventID uuid.UUID) (*domain.Registration, error) {
	if principal == nil {
		return nil, authz.ErrAuthenticationRequired
	}

	var registration *domain.Registration
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		event, err := uc.eventReader.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.Status != eventDomain.StatusPublished {
			return domain.ErrEventNotPublished
		}

		count, err := uc.registrationRepo.CountActiveByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if count >= event.Capacity {
			return domain.ErrEventFull
		}

		existing, err := uc.registrationRepo.GetByUserAndEvent(ctx, principal.UserID, eventID)
		switch {
		case err == nil && !existing.Deleted():
			return domain.ErrAlreadyRegistered
		case err == nil:
			if err := uc.registrationRepo.Restore(ctx, existing.ID); err != nil {
				return err
			}
			registration, err = uc.registrationRepo.GetByID(ctx, existing.ID)
			return err
		case errors.Is(err, domain.ErrRegistrationNotFound):
			registration = &domain.Registration{
				ID:      uuid.Must(uuid.NewV7()),
				UserID:  principal.UserID,
				EventID: eventID,
			}
			return uc.registrationRepo.Create(ctx, registration)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// GetByID retrieves a registration. The owner can read their own; anyone else
// needs EVENT_REGISTRATION_FORCE_READ.
func (uc *RegistrationUseCase) GetByID(ctx context.Context, principal *authz.Principal, id uuid.UUID) (*domain.Registration, error) {
	registration, err := uc.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	if principal.UserID != registration.UserID {
		if err := authz.Authorize(principal, authz.RegistrationForceRead); err != nil {
			return nil, err
		}
	}
	return registration, nil
}

// ListByEvent retrieves live registrations for an event with pagination
func (uc *RegistrationUseCase) ListByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*domain.Registration, error) {
	return uc.registrationRepo.ListByEvent(ctx, eventID, limit, offset)
}

// ListMine retrieves the principal's own live registrations
func (uc *RegistrationUseCase) ListMine(ctx context.Context, principal *authz.Principal, limit, offset int) ([]*domain.Registration, error) {
	if principal == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	return uc.registrationRepo.ListByUser(ctx, principal.UserID, limit, offset)
}

// ListDeleted retrieves soft-deleted registrations with pagination
func (uc *RegistrationUseCase) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	return uc.registrationRepo.ListDeleted(ctx, limit, offset)
}

// ListWithDeleted retrieves registrations with pagination regardless of
// soft-delete state
func (uc *RegistrationUseCase) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	return uc.registrationRepo.ListWithDeleted(ctx, limit, offset)
}

// CheckIn marks a registration as attended. Checking in twice is a conflict.
func (uc *RegistrationUseCase) CheckIn(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	var registration *domain.Registration
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		registration, err = uc.registrationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if registration.CheckedIn {
			return domain.ErrAlreadyCheckedIn
		}

		registration.CheckedIn = true
		return uc.registrationRepo.Update(ctx, registration)
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// Cancel soft-deletes a registration. The owner needs
// EVENT_REGISTRATION_DELETE; anyone else needs EVENT_REGISTRATION_FORCE_DELETE.
func (uc *RegistrationUseCase) Cancel(ctx context.Context, principal *authz.Principal, id uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		registration, err := uc.registrationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := authz.AuthorizeOwned(principal, registration.UserID, authz.RegistrationDelete, authz.RegistrationForceDelete); err != nil {
			return err
		}

		return uc.registrationRepo.SoftDelete(ctx, id)
	})
}

// Restore reverses a soft delete and returns the restored registration
func (uc *RegistrationUseCase) Restore(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	if err := uc.registrationRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return uc.registrationRepo.GetByID(ctx, id)
}

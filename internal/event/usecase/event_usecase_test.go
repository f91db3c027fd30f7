package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/event/domain"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, filter domain.ListEventsFilter, limit, offset int) ([]*domain.Event, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupEventUseCase(t *testing.T) (UseCase, *MockTxManager, *MockEventRepository) {
	t.Helper()

	mockTxManager := &MockTxManager{}
	mockRepo := &MockEventRepository{}
	useCase := NewEventUseCase(mockTxManager, mockRepo)

	return useCase, mockTxManager, mockRepo
}

func managerPrincipal(userID uuid.UUID) *authz.Principal {
	return authz.NewPrincipal(userID, []authz.Role{authz.RoleManager})
}

func validCreateInput() *domain.CreateEventInput {
	start := time.Now().Add(24 * time.Hour)
	return &domain.CreateEventInput{
		Title:       "  Go Conference  ",
		Description: "A conference about Go",
		StartDate:   start,
		EndDate:     start.Add(8 * time.Hour),
		Location:    "ONLINE",
		Capacity:    100,
		CategoryIDs: []uuid.UUID{uuid.Must(uuid.NewV7())},
	}
}

func TestEventUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreatesDraftOwnedByPrincipal", func(t *testing.T) {
		useCase, mockTxManager, mockRepo := setupEventUseCase(t)

		principal := managerPrincipal(uuid.Must(uuid.NewV7()))
		input := validCreateInput()

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(event *domain.Event) bool {
			return event.Title == "Go Conference" &&
				event.Status == domain.StatusDraft &&
				event.CreatedBy == principal.UserID &&
				len(event.CategoryIDs) == 1
		})).Return(nil).Once()

		event, err := useCase.Create(ctx, principal, input)

		assert.NoError(t, err)
		assert.NotNil(t, event)
		assert.Equal(t, domain.LocationOnline, event.Location)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NilPrincipal", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		event, err := useCase.Create(ctx, nil, validCreateInput())

		assert.ErrorIs(t, err, authz.ErrAuthenticationRequired)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownLocation", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		input := validCreateInput()
		input.Location = "METAVERSE"

		event, err := useCase.Create(ctx, managerPrincipal(uuid.Must(uuid.NewV7())), input)

		assert.ErrorIs(t, err, domain.ErrUnknownLocation)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_EndBeforeStart", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		input := validCreateInput()
		input.EndDate = input.StartDate.Add(-time.Hour)

		event, err := useCase.Create(ctx, managerPrincipal(uuid.Must(uuid.NewV7())), input)

		assert.ErrorIs(t, err, domain.ErrInvalidEventPeriod)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_BlankTitle", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		input := validCreateInput()
		input.Title = "   "

		event, err := useCase.Create(ctx, managerPrincipal(uuid.Must(uuid.NewV7())), input)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_ZeroCapacity", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		input := validCreateInput()
		input.Capacity = 0

		event, err := useCase.Create(ctx, managerPrincipal(uuid.Must(uuid.NewV7())), input)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func validUpdateInput() *domain.UpdateEventInput {
	start := time.Now().Add(48 * time.Hour)
	return &domain.UpdateEventInput{
		Title:       "Updated Conference",
		Description: "Updated description",
		StartDate:   start,
		EndDate:     start.Add(4 * time.Hour),
		Location:    "HYBRID",
		Capacity:    50,
		Status:      "PUBLISHED",
	}
}

func TestEventUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_OwnerUpdates", func(t *testing.T) {
		useCase, mockTxManager, mockRepo := setupEventUseCase(t)

		owner := managerPrincipal(uuid.Must(uuid.NewV7()))
		stored := &domain.Event{
			ID:        uuid.Must(uuid.NewV7()),
			Title:     "Original",
			Status:    domain.StatusDraft,
			CreatedBy: owner.UserID,
		}

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		mockRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()
		mockRepo.On("Update", ctx, stored).Return(nil).Once()

		event, err := useCase.Update(ctx, owner, stored.ID, validUpdateInput())

		assert.NoError(t, err)
		assert.Equal(t, "Updated Conference", event.Title)
		assert.Equal(t, domain.StatusPublished, event.Status)
		assert.Equal(t, domain.LocationHybrid, event.Location)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_ForcePermissionUpdatesForeignEvent", func(t *testing.T) {
		useCase, mockTxManager, mockRepo := setupEventUseCase(t)

		admin := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleAdmin})
		stored := &domain.Event{
			ID:        uuid.Must(uuid.NewV7()),
			CreatedBy: uuid.Must(uuid.NewV7()),
		}

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		mockRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()
		mockRepo.On("Update", ctx, stored).Return(nil).Once()

		_, err := useCase.Update(ctx, admin, stored.ID, validUpdateInput())

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NonOwnerWithoutForcePermission", func(t *testing.T) {
		useCase, mockTxManager, mockRepo := setupEventUseCase(t)

		intruder := managerPrincipal(uuid.Must(uuid.NewV7()))
		stored := &domain.Event{
			ID:        uuid.Must(uuid.NewV7()),
			CreatedBy: uuid.Must(uuid.NewV7()),
		}

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		mockRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()

		event, err := useCase.Update(ctx, intruder, stored.ID, validUpdateInput())

		assert.ErrorIs(t, err, authz.ErrAuthorizationDenied)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_EventNotFound", func(t *testing.T) {
		useCase, mockTxManager, mockRepo := setupEventUseCase(t)
		id := uuid.Must(uuid.NewV7())

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		mockRepo.On("GetByID", ctx, id).Return(nil, domain.ErrEventNotFound).Once()

		event, err := useCase.Update(ctx, managerPrincipal(uuid.Must(uuid.NewV7())), id, validUpdateInput())

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownStatus", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		input := validUpdateInput()
		input.Status = "POSTPONED"

		event, err := useCase.Update(ctx, managerPrincipal(uuid.Must(uuid.NewV7())), uuid.Must(uuid.NewV7()), input)

		assert.ErrorIs(t, err, domain.ErrUnknownEventStatus)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestEventUseCase_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_OwnerDeletes", func(t *testing.T) {
		useCase, mockTxManager, mockRepo := setupEventUseCase(t)

		owner := managerPrincipal(uuid.Must(uuid.NewV7()))
		stored := &domain.Event{ID: uuid.Must(uuid.NewV7()), CreatedBy: owner.UserID}

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		mockRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()
		mockRepo.On("SoftDelete", ctx, stored.ID).Return(nil).Once()

		err := useCase.SoftDelete(ctx, owner, stored.ID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NonOwnerWithoutForcePermission", func(t *testing.T) {
		useCase, mockTxManager, mockRepo := setupEventUseCase(t)

		intruder := managerPrincipal(uuid.Must(uuid.NewV7()))
		stored := &domain.Event{ID: uuid.Must(uuid.NewV7()), CreatedBy: uuid.Must(uuid.NewV7())}

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		mockRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()

		err := useCase.SoftDelete(ctx, intruder, stored.ID)

		assert.ErrorIs(t, err, authz.ErrAuthorizationDenied)
		mockRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})
}

func TestEventUseCase_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsRestoredEvent", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		stored := &domain.Event{ID: uuid.Must(uuid.NewV7())}

		mockRepo.On("Restore", ctx, stored.ID).Return(nil).Once()
		mockRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()

		event, err := useCase.Restore(ctx, stored.ID)

		assert.NoError(t, err)
		assert.Equal(t, stored, event)
	})

	t.Run("Error_EventNotDeleted", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)
		id := uuid.Must(uuid.NewV7())

		mockRepo.On("Restore", ctx, id).Return(domain.ErrEventNotDeleted).Once()

		event, err := useCase.Restore(ctx, id)

		assert.ErrorIs(t, err, domain.ErrEventNotDeleted)
		assert.Nil(t, event)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestEventUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PassesFilterThrough", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		status := domain.StatusPublished
		filter := domain.ListEventsFilter{Status: &status}
		events := []*domain.Event{{ID: uuid.Must(uuid.NewV7())}}

		mockRepo.On("List", ctx, filter, 50, 0).Return(events, nil).Once()

		result, err := useCase.List(ctx, filter, 50, 0)

		assert.NoError(t, err)
		assert.Equal(t, events, result)
	})

	t.Run("Success_WithDeletedIncludesSoftDeletedRows", func(t *testing.T) {
		useCase, _, mockRepo := setupEventUseCase(t)

		deletedAt := time.Now().UTC()
		events := []*domain.Event{
			{ID: uuid.Must(uuid.NewV7())},
			{ID: uuid.Must(uuid.NewV7()), DeletedAt: &deletedAt},
		}

		mockRepo.On("ListWithDeleted", ctx, 50, 0).Return(events, nil).Once()

		result, err := useCase.ListWithDeleted(ctx, 50, 0)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.True(t, result[1].Deleted())
	})
}

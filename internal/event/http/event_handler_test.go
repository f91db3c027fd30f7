package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authHTTP "github.com/afga-dev/attendify-api/internal/auth/http"
	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/event/domain"
	"github.com/afga-dev/attendify-api/internal/event/http/dto"
)

// MockEventUseCase is a mock implementation of usecase.UseCase for testing.
type MockEventUseCase struct {
	mock.Mock
}

func (m *MockEventUseCase) Create(
	ctx context.Context,
	principal *authz.Principal,
	input *domain.CreateEventInput,
) (*domain.Event, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) List(
	ctx context.Context,
	filter domain.ListEventsFilter,
	limit, offset int,
) ([]*domain.Event, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) Update(
	ctx context.Context,
	principal *authz.Principal,
	id uuid.UUID,
	input *domain.UpdateEventInput,
) (*domain.Event, error) {
	args := m.Called(ctx, principal, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) SoftDelete(ctx context.Context, principal *authz.Principal, id uuid.UUID) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

func (m *MockEventUseCase) Restore(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func setupEventTestHandler(t *testing.T) (*EventHandler, *MockEventUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &MockEventUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewEventHandler(mockUseCase, logger)

	return handler, mockUseCase
}

func createTestContext(method, path string, body interface{}, principal *authz.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		req = req.WithContext(authHTTP.WithPrincipal(req.Context(), principal))
	}
	c.Request = req

	return c, w
}

func validCreateRequest() dto.CreateEventRequest {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	return dto.CreateEventRequest{
		Title:       "Go Conference",
		Description: "A conference about Go",
		StartDate:   start,
		EndDate:     start.Add(8 * time.Hour),
		Location:    "ONLINE",
		Capacity:    100,
	}
}

func TestEventHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleManager})
		event := &domain.Event{
			ID:        uuid.Must(uuid.NewV7()),
			Title:     "Go Conference",
			Status:    domain.StatusDraft,
			CreatedBy: principal.UserID,
		}

		mockUseCase.On("Create", mock.Anything, principal, mock.AnythingOfType("*domain.CreateEventInput")).
			Return(event, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/events", validCreateRequest(), principal)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.EventResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "DRAFT", response.Status)
	})

	t.Run("Error_UnknownLocation", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		request := validCreateRequest()
		request.Location = "METAVERSE"

		c, w := createTestContext(http.MethodPost, "/v1/events", request, nil)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingCapacity", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		request := validCreateRequest()
		request.Capacity = 0

		c, w := createTestContext(http.MethodPost, "/v1/events", request, nil)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventHandler_GetHandler(t *testing.T) {
	t.Run("Success_ReturnsEvent", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		event := &domain.Event{ID: uuid.Must(uuid.NewV7()), Title: "Go Conference"}
		mockUseCase.On("GetByID", mock.Anything, event.ID).Return(event, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/events/"+event.ID.String(), nil, nil)
		c.Params = gin.Params{{Key: "id", Value: event.ID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetByID", mock.Anything, id).Return(nil, domain.ErrEventNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/events/"+id.String(), nil, nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/events/nope", nil, nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestEventHandler_ListHandler(t *testing.T) {
	t.Run("Success_StatusFilter", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		status := domain.StatusPublished
		events := []*domain.Event{{ID: uuid.Must(uuid.NewV7()), Status: status}}

		mockUseCase.On("List", mock.Anything, domain.ListEventsFilter{Status: &status}, 50, 0).
			Return(events, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/events?status=PUBLISHED", nil, nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListEventsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 1)
	})

	t.Run("Success_CategoryFilter", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		categoryID := uuid.Must(uuid.NewV7())
		mockUseCase.On("List", mock.Anything, domain.ListEventsFilter{CategoryID: &categoryID}, 50, 0).
			Return([]*domain.Event{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/events?category="+categoryID.String(), nil, nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidStatusFilter", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/events?status=POSTPONED", nil, nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidCategoryFilter", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/events?category=not-a-uuid", nil, nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventHandler_UpdateHandler(t *testing.T) {
	t.Run("Success_OwnerUpdates", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleManager})
		event := &domain.Event{ID: uuid.Must(uuid.NewV7()), Title: "Updated", CreatedBy: principal.UserID}

		mockUseCase.On("Update", mock.Anything, principal, event.ID, mock.AnythingOfType("*domain.UpdateEventInput")).
			Return(event, nil).
			Once()

		request := dto.UpdateEventRequest{
			Title:       "Updated",
			Description: "New description",
			StartDate:   time.Now().Add(24 * time.Hour),
			EndDate:     time.Now().Add(32 * time.Hour),
			Location:    "PRESENTIAL",
			Capacity:    20,
			Status:      "PUBLISHED",
		}

		c, w := createTestContext(http.MethodPut, "/v1/events/"+event.ID.String(), request, principal)
		c.Params = gin.Params{{Key: "id", Value: event.ID.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_ForeignEventWithoutForcePermission", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleManager})
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Update", mock.Anything, principal, id, mock.AnythingOfType("*domain.UpdateEventInput")).
			Return(nil, authz.ErrAuthorizationDenied).
			Once()

		request := dto.UpdateEventRequest{
			Title:       "Updated",
			Description: "New description",
			StartDate:   time.Now().Add(24 * time.Hour),
			EndDate:     time.Now().Add(32 * time.Hour),
			Location:    "ONLINE",
			Capacity:    20,
			Status:      "DRAFT",
		}

		c, w := createTestContext(http.MethodPut, "/v1/events/"+id.String(), request, principal)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEventHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_NoContent", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleManager})
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("SoftDelete", mock.Anything, principal, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/events/"+id.String(), nil, principal)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestEventHandler_RestoreHandler(t *testing.T) {
	t.Run("Error_NotDeleted", func(t *testing.T) {
		handler, mockUseCase := setupEventTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Restore", mock.Anything, id).Return(nil, domain.ErrEventNotDeleted).Once()

		c, w := createTestContext(http.MethodPost, "/v1/events/"+id.String()+"/restore", nil, nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.RestoreHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authHTTP "github.com/afga-dev/attendify-api/internal/auth/http"
	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/registration/domain"
	"github.com/afga-dev/attendify-api/internal/registration/http/dto"
)

// MockRegistrationUseCase is a mock implementation of usecase.UseCase for testing.
type MockRegistrationUseCase struct {
	mock.Mock
}

func (m *MockRegistrationUseCase) Register(
	ctx context.Context,
	principal *authz.Principal,
	eventID uuid.UUID,
) (*domain.Registration, error) {
	args := m.Called(ctx, principal, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) GetByID(
	ctx context.Context,
	principal *authz.Principal,
	id uuid.UUID,
) (*domain.Registration, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) ListByEvent(
	ctx context.Context,
	eventID uuid.UUID,
	limit, offset int,
) ([]*domain.Registration, error) {
	args := m.Called(ctx, eventID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) ListMine(
	ctx context.Context,
	principal *authz.Principal,
	limit, offset int,
) ([]*domain.Registration, error) {
	args := m.Called(ctx, principal, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) CheckIn(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationUseCase) Cancel(ctx context.Context, principal *authz.Principal, id uuid.UUID) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

func (m *MockRegistrationUseCase) Restore(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func setupRegistrationTestHandler(t *testing.T) (*RegistrationHandler, *MockRegistrationUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &MockRegistrationUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewRegistrationHandler(mockUseCase, logger)

	return handler, mockUseCase
}

func createTestContext(method, path string, principal *authz.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, nil)
	if principal != nil {
		req = req.WithContext(authHTTP.WithPrincipal(req.Context(), principal))
	}
	c.Request = req

	return c, w
}

func TestRegistrationHandler_RegisterHandler(t *testing.T) {
	t.Run("Success_Registers", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleUser})
		eventID := uuid.Must(uuid.NewV7())
		registration := &domain.Registration{
			ID:      uuid.Must(uuid.NewV7()),
			UserID:  principal.UserID,
			EventID: eventID,
		}

		mockUseCase.On("Register", mock.Anything, principal, eventID).Return(registration, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/events/"+eventID.String()+"/registrations", principal)
		c.Params = gin.Params{{Key: "id", Value: eventID.String()}}

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.RegistrationResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, eventID, response.EventID)
	})

	t.Run("Error_AlreadyRegistered", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleUser})
		eventID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Register", mock.Anything, principal, eventID).
			Return(nil, domain.ErrAlreadyRegistered).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/events/"+eventID.String()+"/registrations", principal)
		c.Params = gin.Params{{Key: "id", Value: eventID.String()}}

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_EventFull", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleUser})
		eventID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Register", mock.Anything, principal, eventID).
			Return(nil, domain.ErrEventFull).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/events/"+eventID.String()+"/registrations", principal)
		c.Params = gin.Params{{Key: "id", Value: eventID.String()}}

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_InvalidEventID", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/events/nope/registrations", nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegistrationHandler_GetHandler(t *testing.T) {
	t.Run("Error_ForeignRegistration", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleUser})
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetByID", mock.Anything, principal, id).
			Return(nil, authz.ErrAuthorizationDenied).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/registrations/"+id.String(), principal)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRegistrationHandler_ListByEventHandler(t *testing.T) {
	t.Run("Success_ReturnsRegistrations", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		eventID := uuid.Must(uuid.NewV7())
		registrations := []*domain.Registration{
			{ID: uuid.Must(uuid.NewV7()), EventID: eventID},
			{ID: uuid.Must(uuid.NewV7()), EventID: eventID},
		}

		mockUseCase.On("ListByEvent", mock.Anything, eventID, 50, 0).Return(registrations, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/events/"+eventID.String()+"/registrations", nil)
		c.Params = gin.Params{{Key: "id", Value: eventID.String()}}

		handler.ListByEventHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListRegistrationsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 2)
	})
}

func TestRegistrationHandler_ListMineHandler(t *testing.T) {
	t.Run("Success_ReturnsOwnRegistrations", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleUser})
		registrations := []*domain.Registration{{ID: uuid.Must(uuid.NewV7()), UserID: principal.UserID}}

		mockUseCase.On("ListMine", mock.Anything, principal, 50, 0).Return(registrations, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/registrations/me", principal)

		handler.ListMineHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRegistrationHandler_CheckInHandler(t *testing.T) {
	t.Run("Success_ChecksIn", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		registration := &domain.Registration{ID: uuid.Must(uuid.NewV7()), CheckedIn: true}

		mockUseCase.On("CheckIn", mock.Anything, registration.ID).Return(registration, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/registrations/"+registration.ID.String()+"/checkin", nil)
		c.Params = gin.Params{{Key: "id", Value: registration.ID.String()}}

		handler.CheckInHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RegistrationResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.True(t, response.CheckedIn)
	})

	t.Run("Error_AlreadyCheckedIn", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("CheckIn", mock.Anything, id).Return(nil, domain.ErrAlreadyCheckedIn).Once()

		c, w := createTestContext(http.MethodPost, "/v1/registrations/"+id.String()+"/checkin", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.CheckInHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRegistrationHandler_CancelHandler(t *testing.T) {
	t.Run("Success_NoContent", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleUser})
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Cancel", mock.Anything, principal, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/registrations/"+id.String(), principal)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.CancelHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)

		principal := authz.NewPrincipal(uuid.Must(uuid.NewV7()), []authz.Role{authz.RoleUser})
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Cancel", mock.Anything, principal, id).
			Return(domain.ErrRegistrationNotFound).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/registrations/"+id.String(), principal)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.CancelHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRegistrationHandler_RestoreHandler(t *testing.T) {
	t.Run("Error_NotDeleted", func(t *testing.T) {
		handler, mockUseCase := setupRegistrationTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Restore", mock.Anything, id).
			Return(nil, domain.ErrRegistrationNotDeleted).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/registrations/"+id.String()+"/restore", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.RestoreHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

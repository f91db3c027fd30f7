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

	"github.com/afga-dev/attendify-api/internal/category/domain"
	"github.com/afga-dev/attendify-api/internal/category/http/dto"
)

// MockCategoryUseCase is a mock implementation of usecase.UseCase for testing.
type MockCategoryUseCase struct {
	mock.Mock
}

func (m *MockCategoryUseCase) Create(
	ctx context.Context,
	input *domain.CreateCategoryInput,
) (*domain.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateCategoryInput,
) (*domain.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryUseCase) Restore(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func setupCategoryTestHandler(t *testing.T) (*CategoryHandler, *MockCategoryUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &MockCategoryUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewCategoryHandler(mockUseCase, logger)

	return handler, mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestCategoryHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		category := &domain.Category{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        "Workshops",
			Description: "Hands-on sessions",
		}

		mockUseCase.On("Create", mock.Anything, &domain.CreateCategoryInput{
			Name:        "Workshops",
			Description: "Hands-on sessions",
		}).Return(category, nil).Once()

		request := dto.CategoryRequest{Name: "Workshops", Description: "Hands-on sessions"}

		c, w := createTestContext(http.MethodPost, "/v1/categories", request)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.CategoryResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Workshops", response.Name)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		request := dto.CategoryRequest{Name: "   "}

		c, w := createTestContext(http.MethodPost, "/v1/categories", request)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, domain.ErrCategoryAlreadyExists).
			Once()

		request := dto.CategoryRequest{Name: "Workshops"}

		c, w := createTestContext(http.MethodPost, "/v1/categories", request)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCategoryHandler_GetHandler(t *testing.T) {
	t.Run("Success_ReturnsCategory", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		category := &domain.Category{ID: uuid.Must(uuid.NewV7()), Name: "Workshops"}
		mockUseCase.On("GetByID", mock.Anything, category.ID).Return(category, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/categories/"+category.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: category.ID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetByID", mock.Anything, id).
			Return(nil, domain.ErrCategoryNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/categories/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/categories/nope", nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestCategoryHandler_ListHandler(t *testing.T) {
	t.Run("Success_DefaultPagination", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		categories := []*domain.Category{
			{ID: uuid.Must(uuid.NewV7()), Name: "Talks"},
			{ID: uuid.Must(uuid.NewV7()), Name: "Workshops"},
		}
		mockUseCase.On("List", mock.Anything, 50, 0).Return(categories, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/categories", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListCategoriesResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 2)
	})
}

func TestCategoryHandler_ListWithDeletedHandler(t *testing.T) {
	t.Run("Success_ReturnsLiveAndDeleted", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		deletedAt := time.Now().UTC()
		categories := []*domain.Category{
			{ID: uuid.Must(uuid.NewV7()), Name: "Talks"},
			{ID: uuid.Must(uuid.NewV7()), Name: "Workshops", DeletedAt: &deletedAt},
		}
		mockUseCase.On("ListWithDeleted", mock.Anything, 50, 0).Return(categories, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/categories/with-deleted", nil)

		handler.ListWithDeletedHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListCategoriesResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 2)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/categories/with-deleted?limit=1000", nil)

		handler.ListWithDeletedHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "ListWithDeleted", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCategoryHandler_UpdateHandler(t *testing.T) {
	t.Run("Success_ReplacesFields", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)

		category := &domain.Category{ID: uuid.Must(uuid.NewV7()), Name: "Talks"}
		mockUseCase.On("Update", mock.Anything, category.ID, &domain.UpdateCategoryInput{
			Name: "Talks",
		}).Return(category, nil).Once()

		request := dto.CategoryRequest{Name: "Talks"}

		c, w := createTestContext(http.MethodPut, "/v1/categories/"+category.ID.String(), request)
		c.Params = gin.Params{{Key: "id", Value: category.ID.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCategoryHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_NoContent", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("SoftDelete", mock.Anything, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/categories/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestCategoryHandler_RestoreHandler(t *testing.T) {
	t.Run("Error_NotDeleted", func(t *testing.T) {
		handler, mockUseCase := setupCategoryTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Restore", mock.Anything, id).
			Return(nil, domain.ErrCategoryNotDeleted).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/categories/"+id.String()+"/restore", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.RestoreHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

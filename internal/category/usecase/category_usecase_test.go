package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/afga-dev/attendify-api/internal/category/domain"
	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_TrimsAndStores", func(t *testing.T) {
		repo := &MockCategoryRepository{}
		uc := NewCategoryUseCase(repo)

		repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		category, err := uc.Create(ctx, &domain.CreateCategoryInput{
			Name:        "  Workshops  ",
			Description: "Hands-on sessions",
		})
		require.NoError(t, err)
		assert.Equal(t, "Workshops", category.Name)
		assert.NotEqual(t, uuid.Nil, category.ID)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		repo := &MockCategoryRepository{}
		uc := NewCategoryUseCase(repo)

		category, err := uc.Create(ctx, &domain.CreateCategoryInput{Name: "   "})
		assert.Nil(t, category)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo := &MockCategoryRepository{}
		uc := NewCategoryUseCase(repo)

		repo.On("Create", ctx, mock.Anything).
			Return(domain.ErrCategoryAlreadyExists).
			Once()

		category, err := uc.Create(ctx, &domain.CreateCategoryInput{Name: "Workshops"})
		assert.Nil(t, category)
		assert.True(t, apperrors.Is(err, domain.ErrCategoryAlreadyExists))
	})
}

func TestCategoryUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReplacesFields", func(t *testing.T) {
		repo := &MockCategoryRepository{}
		uc := NewCategoryUseCase(repo)
		id := uuid.Must(uuid.NewV7())

		stored := &domain.Category{ID: id, Name: "Workshops", Description: "old"}
		repo.On("GetByID", ctx, id).Return(stored, nil).Once()
		repo.On("Update", ctx, stored).Return(nil).Once()

		category, err := uc.Update(ctx, id, &domain.UpdateCategoryInput{
			Name:        "Talks",
			Description: "new",
		})
		require.NoError(t, err)
		assert.Equal(t, "Talks", category.Name)
		assert.Equal(t, "new", category.Description)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &MockCategoryRepository{}
		uc := NewCategoryUseCase(repo)
		id := uuid.Must(uuid.NewV7())

		repo.On("GetByID", ctx, id).Return(nil, domain.ErrCategoryNotFound).Once()

		category, err := uc.Update(ctx, id, &domain.UpdateCategoryInput{Name: "Talks"})
		assert.Nil(t, category)
		assert.True(t, apperrors.Is(err, domain.ErrCategoryNotFound))

		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCategoryUseCase_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsRestoredCategory", func(t *testing.T) {
		repo := &MockCategoryRepository{}
		uc := NewCategoryUseCase(repo)
		id := uuid.Must(uuid.NewV7())

		restored := &domain.Category{ID: id, Name: "Workshops"}
		repo.On("Restore", ctx, id).Return(nil).Once()
		repo.On("GetByID", ctx, id).Return(restored, nil).Once()

		category, err := uc.Restore(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, category.DeletedAt)
	})

	t.Run("Error_NotDeleted", func(t *testing.T) {
		repo := &MockCategoryRepository{}
		uc := NewCategoryUseCase(repo)
		id := uuid.Must(uuid.NewV7())

		repo.On("Restore", ctx, id).Return(domain.ErrCategoryNotDeleted).Once()

		category, err := uc.Restore(ctx, id)
		assert.Nil(t, category)
		assert.True(t, apperrors.Is(err, domain.ErrCategoryNotDeleted))
	})
}

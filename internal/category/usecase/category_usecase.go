// Package usecase implements the category business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/category/domain"
	appValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// UseCase defines the interface for category business logic operations.
type UseCase interface {
	Create(ctx context.Context, input *domain.CreateCategoryInput) (*domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Category, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.UpdateCategoryInput) (*domain.Category, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*domain.Category, error)
}

// CategoryRepository interface defines category repository operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Category, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// CategoryUseCase handles category-related business logic.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository) UseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

func validateCategoryFields(name, description *string) error {
	err := validation.Errors{
		"name": validation.Validate(*name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
		"description": validation.Validate(*description,
			validation.Length(0, 1000),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

// Create stores a new category. Names are unique; a collision surfaces as
// ErrCategoryAlreadyExists.
func (uc *CategoryUseCase) Create(
	ctx context.Context,
	input *domain.CreateCategoryInput,
) (*domain.Category, error) {
	if err := validateCategoryFields(&input.Name, &input.Description); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetByID retrieves a live category.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// List returns live categories ordered by name.
func (uc *CategoryUseCase) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	return uc.categoryRepo.List(ctx, limit, offset)
}

// ListDeleted returns soft-deleted categories ordered by name.
func (uc *CategoryUseCase) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	return uc.categoryRepo.ListDeleted(ctx, limit, offset)
}

// ListWithDeleted returns categories ordered by name regardless of
// soft-delete state.
func (uc *CategoryUseCase) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	return uc.categoryRepo.ListWithDeleted(ctx, limit, offset)
}

// Update replaces the name and description of a live category.
func (uc *CategoryUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateCategoryInput,
) (*domain.Category, error) {
	if err := validateCategoryFields(&input.Name, &input.Description); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Description = strings.TrimSpace(input.Description)

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// SoftDelete marks a category as deleted. Events keep their link to it; the
// category just stops appearing in live reads.
func (uc *CategoryUseCase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return uc.categoryRepo.SoftDelete(ctx, id)
}

// Restore brings a soft-deleted category back.
func (uc *CategoryUseCase) Restore(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if err := uc.categoryRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return uc.categoryRepo.GetByID(ctx, id)
}

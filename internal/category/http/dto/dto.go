// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/afga-dev/attendify-api/internal/category/domain"
	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// CategoryRequest contains the parameters for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the category request is valid.
func (r *CategoryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MapCategoryToResponse converts a domain category to an API response.
func MapCategoryToResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		DeletedAt:   category.DeletedAt,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ListCategoriesResponse represents a paginated list of categories in API responses.
type ListCategoriesResponse struct {
	Data []CategoryResponse `json:"data"`
}

// MapCategoriesToListResponse converts a slice of domain categories to a list API response.
func MapCategoriesToListResponse(categories []*domain.Category) ListCategoriesResponse {
	categoryResponses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		categoryResponses = append(categoryResponses, MapCategoryToResponse(category))
	}
	return ListCategoriesResponse{
		Data: categoryResponses,
	}
}

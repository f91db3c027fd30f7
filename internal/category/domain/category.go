// Package domain defines the category entity and its lifecycle errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/errors"
)

// Category groups events under a human-readable name. Names are unique
// across the live and soft-deleted population.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Deleted reports whether the category is soft-deleted.
func (c *Category) Deleted() bool {
	return c.DeletedAt != nil
}

// CreateCategoryInput contains the data for creating a category.
type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCategoryInput contains the data for updating a category.
type UpdateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	// ErrCategoryNotFound indicates no live category matches the identifier.
	ErrCategoryNotFound = errors.Wrap(errors.ErrNotFound, "category not found")

	// ErrCategoryAlreadyExists indicates a name collision on create or rename.
	ErrCategoryAlreadyExists = errors.Wrap(errors.ErrConflict, "category already exists")

	// ErrCategoryNotDeleted indicates a restore attempt on a live category.
	ErrCategoryNotDeleted = errors.Wrap(errors.ErrConflict, "category is not deleted")
)

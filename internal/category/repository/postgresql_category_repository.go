// Package repository provides data persistence implementations for category entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/category/domain"
	"github.com/afga-dev/attendify-api/internal/database"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// PostgreSQLCategoryRepository handles category persistence for PostgreSQL
type PostgreSQLCategoryRepository struct {
	db *sql.DB
}

// NewPostgreSQLCategoryRepository creates a new PostgreSQLCategoryRepository
func NewPostgreSQLCategoryRepository(db *sql.DB) *PostgreSQLCategoryRepository {
	return &PostgreSQLCategoryRepository{
		db: db,
	}
}

// Create inserts a new category
func (r *PostgreSQLCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO categories (id, name, description, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		category.ID, category.Name, category.Description,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrCategoryAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create category")
	}
	return nil
}

// GetByID retrieves a category by ID, excluding soft-deleted categories
func (r *PostgreSQLCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories WHERE id = $1 AND deleted_at IS NULL`

	return r.getOne(ctx, query, id)
}

// List retrieves categories ordered by name, excluding soft-deleted categories
func (r *PostgreSQLCategoryRepository) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories WHERE deleted_at IS NULL
			  ORDER BY name LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// ListDeleted retrieves soft-deleted categories ordered by name
func (r *PostgreSQLCategoryRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories WHERE deleted_at IS NOT NULL
			  ORDER BY name LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves categories ordered by name, including soft-deleted ones
func (r *PostgreSQLCategoryRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories
			  ORDER BY name LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// Update persists the mutable fields of an existing category
func (r *PostgreSQLCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET name = $1, description = $2, updated_at = NOW()
			  WHERE id = $3 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		category.Name, category.Description, category.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrCategoryAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update category")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// SoftDelete marks a category as deleted
func (r *PostgreSQLCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete category")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Restore reverses a soft delete
func (r *PostgreSQLCategoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET deleted_at = NULL, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to restore category")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrCategoryNotDeleted
	}
	return nil
}

func (r *PostgreSQLCategoryRepository) getOne(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var category domain.Category
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&category.ID, &category.Name, &category.Description,
		&category.DeletedAt, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get category")
	}

	return &category, nil
}

func (r *PostgreSQLCategoryRepository) list(ctx context.Context, query string, limit, offset int) ([]*domain.Category, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}
	defer func() { _ = rows.Close() }()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		err := rows.Scan(
			&category.ID, &category.Name, &category.Description,
			&category.DeletedAt, &category.CreatedAt, &category.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate categories")
	}

	return categories, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

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

// MySQLCategoryRepository handles category persistence for MySQL
type MySQLCategoryRepository struct {
	db *sql.DB
}

// NewMySQLCategoryRepository creates a new MySQLCategoryRepository
func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{
		db: db,
	}
}

// Create inserts a new category
func (r *MySQLCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO categories (id, name, description, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := category.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		uuidBytes, category.Name, category.Description,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrCategoryAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create category")
	}
	return nil
}

// GetByID retrieves a category by ID, excluding soft-deleted categories
func (r *MySQLCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.getOne(ctx, query, uuidBytes)
}

// List retrieves categories ordered by name, excluding soft-deleted categories
func (r *MySQLCategoryRepository) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories WHERE deleted_at IS NULL
			  ORDER BY name LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// ListDeleted retrieves soft-deleted categories ordered by name
func (r *MySQLCategoryRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories WHERE deleted_at IS NOT NULL
			  ORDER BY name LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves categories ordered by name, including soft-deleted ones
func (r *MySQLCategoryRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	query := `SELECT id, name, description, deleted_at, created_at, updated_at
			  FROM categories
			  ORDER BY name LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// Update persists the mutable fields of an existing category
func (r *MySQLCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET name = ?, description = ?, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := category.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query,
		category.Name, category.Description, uuidBytes,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (r *MySQLCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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
func (r *MySQLCategoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET deleted_at = NULL, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NOT NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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

func (r *MySQLCategoryRepository) getOne(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var category domain.Category
	var idBytes []byte
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes, &category.Name, &category.Description,
		&category.DeletedAt, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get category")
	}

	// Convert bytes back to UUID
	if err := category.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &category, nil
}

func (r *MySQLCategoryRepository) list(ctx context.Context, query string, limit, offset int) ([]*domain.Category, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}
	defer func() { _ = rows.Close() }()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		var idBytes []byte
		err := rows.Scan(
			&idBytes, &category.Name, &category.Description,
			&category.DeletedAt, &category.CreatedAt, &category.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan category")
		}
		if err := category.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate categories")
	}

	return categories, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

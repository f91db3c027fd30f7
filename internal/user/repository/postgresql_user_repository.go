// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/database"
	"github.com/afga-dev/attendify-api/internal/user/domain"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, password, roles, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Password, rolesToColumn(user.Roles),
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID, excluding soft-deleted users
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE id = $1 AND deleted_at IS NULL`

	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by email, excluding soft-deleted users
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE email = $1 AND deleted_at IS NULL`

	return r.getOne(ctx, query, email)
}

// GetByIDIncludingDeleted retrieves a user by ID regardless of soft-delete state
func (r *PostgreSQLUserRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE id = $1`

	return r.getOne(ctx, query, id)
}

// List retrieves users ordered by creation time, excluding soft-deleted users
func (r *PostgreSQLUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE deleted_at IS NULL
			  ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// ListDeleted retrieves soft-deleted users ordered by creation time
func (r *PostgreSQLUserRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE deleted_at IS NOT NULL
			  ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves users ordered by creation time, including soft-deleted ones
func (r *PostgreSQLUserRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users
			  ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// Update persists the mutable fields of an existing user
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET name = $1, email = $2, password = $3, roles = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		user.Name, user.Email, user.Password, rolesToColumn(user.Roles), user.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SoftDelete marks a user as deleted
func (r *PostgreSQLUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Restore reverses a soft delete
func (r *PostgreSQLUserRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET deleted_at = NULL, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to restore user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrUserNotDeleted
	}
	return nil
}

func (r *PostgreSQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var roles string
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &roles,
		&user.DeletedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	user.Roles, err = rolesFromColumn(roles)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user roles")
	}

	return &user, nil
}

func (r *PostgreSQLUserRepository) list(ctx context.Context, query string, limit, offset int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var roles string
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Password, &roles,
			&user.DeletedAt, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		user.Roles, err = rolesFromColumn(roles)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse user roles")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

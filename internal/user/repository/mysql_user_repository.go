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

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, password, roles, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		uuidBytes, user.Name, user.Email, user.Password, rolesToColumn(user.Roles),
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID, excluding soft-deleted users
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.getOne(ctx, query, uuidBytes)
}

// GetByEmail retrieves a user by email, excluding soft-deleted users
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE email = ? AND deleted_at IS NULL`

	return r.getOne(ctx, query, email)
}

// GetByIDIncludingDeleted retrieves a user by ID regardless of soft-delete state
func (r *MySQLUserRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.getOne(ctx, query, uuidBytes)
}

// List retrieves users ordered by creation time, excluding soft-deleted users
func (r *MySQLUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE deleted_at IS NULL
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// ListDeleted retrieves soft-deleted users ordered by creation time
func (r *MySQLUserRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users WHERE deleted_at IS NOT NULL
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves users ordered by creation time, including soft-deleted ones
func (r *MySQLUserRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `SELECT id, name, email, password, roles, deleted_at, created_at, updated_at
			  FROM users
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// Update persists the mutable fields of an existing user
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET name = ?, email = ?, password = ?, roles = ?, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query,
		user.Name, user.Email, user.Password, rolesToColumn(user.Roles), uuidBytes,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (r *MySQLUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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
func (r *MySQLUserRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET deleted_at = NULL, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NOT NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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

func (r *MySQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var roles string
	var idBytes []byte
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes, &user.Name, &user.Email, &user.Password, &roles,
		&user.DeletedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	// Convert bytes back to UUID
	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	user.Roles, err = rolesFromColumn(roles)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user roles")
	}

	return &user, nil
}

func (r *MySQLUserRepository) list(ctx context.Context, query string, limit, offset int) ([]*domain.User, error) {
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
		var idBytes []byte
		err := rows.Scan(
			&idBytes, &user.Name, &user.Email, &user.Password, &roles,
			&user.DeletedAt, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		if err := user.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

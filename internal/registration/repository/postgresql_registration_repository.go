// Package repository provides data persistence implementations for event registrations.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/database"
	"github.com/afga-dev/attendify-api/internal/registration/domain"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// PostgreSQLRegistrationRepository handles registration persistence for PostgreSQL
type PostgreSQLRegistrationRepository struct {
	db *sql.DB
}

// NewPostgreSQLRegistrationRepository creates a new PostgreSQLRegistrationRepository
func NewPostgreSQLRegistrationRepository(db *sql.DB) *PostgreSQLRegistrationRepository {
	return &PostgreSQLRegistrationRepository{
		db: db,
	}
}

// Create inserts a new registration
func (r *PostgreSQLRegistrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO event_registrations (id, user_id, event_id, checked_in, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		registration.ID, registration.UserID, registration.EventID, registration.CheckedIn,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return apperrors.Wrap(err, "failed to create registration")
	}
	return nil
}

// GetByID retrieves a registration by ID, excluding soft-deleted registrations
func (r *PostgreSQLRegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE id = $1 AND deleted_at IS NULL`

	return r.getOne(ctx, query, id)
}

// GetByUserAndEvent retrieves a registration by its unique (user, event) pair
// regardless of soft-delete state. Re-registration restores the old row.
func (r *PostgreSQLRegistrationRepository) GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE user_id = $1 AND event_id = $2`

	return r.getOne(ctx, query, userID, eventID)
}

// ListByEvent retrieves live registrations for an event
func (r *PostgreSQLRegistrationRepository) ListByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE event_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at LIMIT $2 OFFSET $3`

	return r.list(ctx, query, eventID, limit, offset)
}

// ListByUser retrieves live registrations for a user
func (r *PostgreSQLRegistrationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE user_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at LIMIT $2 OFFSET $3`

	return r.list(ctx, query, userID, limit, offset)
}

// ListDeleted retrieves soft-deleted registrations
func (r *PostgreSQLRegistrationRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE deleted_at IS NOT NULL
			  ORDER BY created_at LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves registrations, including soft-deleted ones
func (r *PostgreSQLRegistrationRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations
			  ORDER BY created_at LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// CountActiveByEvent counts live registrations for an event
func (r *PostgreSQLRegistrationRepository) CountActiveByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1 AND deleted_at IS NULL`

	var count int
	if err := querier.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count registrations")
	}
	return count, nil
}

// Update persists the mutable fields of an existing registration
func (r *PostgreSQLRegistrationRepository) Update(ctx context.Context, registration *domain.Registration) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE event_registrations SET checked_in = $1, updated_at = NOW()
			  WHERE id = $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, registration.CheckedIn, registration.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registration")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// SoftDelete marks a registration as deleted
func (r *PostgreSQLRegistrationRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE event_registrations SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete registration")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// Restore reverses a soft delete. The check-in flag is reset so a restored
// registration starts as not attended.
func (r *PostgreSQLRegistrationRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE event_registrations SET deleted_at = NULL, checked_in = FALSE, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to restore registration")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrRegistrationNotDeleted
	}
	return nil
}

func (r *PostgreSQLRegistrationRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Registration, error) {
	var registration domain.Registration
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&registration.ID, &registration.UserID, &registration.EventID, &registration.CheckedIn,
		&registration.DeletedAt, &registration.CreatedAt, &registration.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get registration")
	}

	return &registration, nil
}

func (r *PostgreSQLRegistrationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	defer func() { _ = rows.Close() }()

	var registrations []*domain.Registration
	for rows.Next() {
		var registration domain.Registration
		err := rows.Scan(
			&registration.ID, &registration.UserID, &registration.EventID, &registration.CheckedIn,
			&registration.DeletedAt, &registration.CreatedAt, &registration.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan registration")
		}
		registrations = append(registrations, &registration)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate registrations")
	}

	return registrations, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

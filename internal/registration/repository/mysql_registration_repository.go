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

// MySQLRegistrationRepository handles registration persistence for MySQL
type MySQLRegistrationRepository struct {
	db *sql.DB
}

// NewMySQLRegistrationRepository creates a new MySQLRegistrationRepository
func NewMySQLRegistrationRepository(db *sql.DB) *MySQLRegistrationRepository {
	return &MySQLRegistrationRepository{
		db: db,
	}
}

// Create inserts a new registration
func (r *MySQLRegistrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO event_registrations (id, user_id, event_id, checked_in, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(6), NOW(6))`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := registration.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err := registration.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	eventBytes, err := registration.EventID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, userBytes, eventBytes, registration.CheckedIn)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return apperrors.Wrap(err, "failed to create registration")
	}
	return nil
}

// GetByID retrieves a registration by ID, excluding soft-deleted registrations
func (r *MySQLRegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.getOne(ctx, query, idBytes)
}

// GetByUserAndEvent retrieves a registration by its unique (user, event) pair
// regardless of soft-delete state. Re-registration restores the old row.
func (r *MySQLRegistrationRepository) GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE user_id = ? AND event_id = ?`

	userBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	eventBytes, err := eventID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.getOne(ctx, query, userBytes, eventBytes)
}

// ListByEvent retrieves live registrations for an event
func (r *MySQLRegistrationRepository) ListByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE event_id = ? AND deleted_at IS NULL
			  ORDER BY created_at LIMIT ? OFFSET ?`

	eventBytes, err := eventID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.list(ctx, query, eventBytes, limit, offset)
}

// ListByUser retrieves live registrations for a user
func (r *MySQLRegistrationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE user_id = ? AND deleted_at IS NULL
			  ORDER BY created_at LIMIT ? OFFSET ?`

	userBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.list(ctx, query, userBytes, limit, offset)
}

// ListDeleted retrieves soft-deleted registrations
func (r *MySQLRegistrationRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations WHERE deleted_at IS NOT NULL
			  ORDER BY created_at LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves registrations, including soft-deleted ones
func (r *MySQLRegistrationRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	query := `SELECT id, user_id, event_id, checked_in, deleted_at, created_at, updated_at
			  FROM event_registrations
			  ORDER BY created_at LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// CountActiveByEvent counts live registrations for an event
func (r *MySQLRegistrationRepository) CountActiveByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM event_registrations WHERE event_id = ? AND deleted_at IS NULL`

	eventBytes, err := eventID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var count int
	if err := querier.QueryRowContext(ctx, query, eventBytes).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count registrations")
	}
	return count, nil
}

// Update persists the mutable fields of an existing registration
func (r *MySQLRegistrationRepository) Update(ctx context.Context, registration *domain.Registration) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE event_registrations SET checked_in = ?, updated_at = NOW(6)
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := registration.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, registration.CheckedIn, idBytes)
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
func (r *MySQLRegistrationRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE event_registrations SET deleted_at = NOW(6), updated_at = NOW(6)
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
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
func (r *MySQLRegistrationRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE event_registrations SET deleted_at = NULL, checked_in = FALSE, updated_at = NOW(6)
			  WHERE id = ? AND deleted_at IS NOT NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
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

func (r *MySQLRegistrationRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Registration, error) {
	var registration domain.Registration
	var idBytes, userBytes, eventBytes []byte
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&idBytes, &userBytes, &eventBytes, &registration.CheckedIn,
		&registration.DeletedAt, &registration.CreatedAt, &registration.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get registration")
	}

	// Convert bytes back to UUIDs
	if err := registration.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := registration.UserID.UnmarshalBinary(userBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := registration.EventID.UnmarshalBinary(eventBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &registration, nil
}

func (r *MySQLRegistrationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	defer func() { _ = rows.Close() }()

	var registrations []*domain.Registration
	for rows.Next() {
		var registration domain.Registration
		var idBytes, userBytes, eventBytes []byte
		err := rows.Scan(
			&idBytes, &userBytes, &eventBytes, &registration.CheckedIn,
			&registration.DeletedAt, &registration.CreatedAt, &registration.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan registration")
		}
		if err := registration.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := registration.UserID.UnmarshalBinary(userBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := registration.EventID.UnmarshalBinary(eventBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		registrations = append(registrations, &registration)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate registrations")
	}

	return registrations, nil
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

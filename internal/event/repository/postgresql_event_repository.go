// Package repository provides data persistence implementations for event entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/afga-dev/attendify-api/internal/database"
	"github.com/afga-dev/attendify-api/internal/event/domain"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// PostgreSQLEventRepository handles event persistence for PostgreSQL
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQLEventRepository
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{
		db: db,
	}
}

// Create inserts a new event together with its category links. Callers run it
// inside a transaction so the event and its links commit atomically.
func (r *PostgreSQLEventRepository) Create(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO events (id, title, description, start_date, end_date, location,
	          capacity, status, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.StartDate, event.EndDate,
		event.Location, event.Capacity, event.Status, event.CreatedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create event")
	}

	return r.insertCategoryLinks(ctx, event.ID, event.CategoryIDs)
}

// GetByID retrieves an event by ID, excluding soft-deleted events
func (r *PostgreSQLEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events WHERE id = $1 AND deleted_at IS NULL`

	return r.getOne(ctx, query, id)
}

// List retrieves events matching the filter, excluding soft-deleted events
func (r *PostgreSQLEventRepository) List(ctx context.Context, filter domain.ListEventsFilter, limit, offset int) ([]*domain.Event, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM event_categories ec WHERE ec.event_id = events.id AND ec.category_id = $%d)",
			len(args)))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events WHERE %s
			  ORDER BY start_date LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), len(args)-1, len(args))

	return r.list(ctx, query, args...)
}

// ListDeleted retrieves soft-deleted events ordered by start date
func (r *PostgreSQLEventRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	query := `SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events WHERE deleted_at IS NOT NULL
			  ORDER BY start_date LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves events ordered by start date, including soft-deleted ones
func (r *PostgreSQLEventRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	query := `SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events
			  ORDER BY start_date LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// Update persists the mutable fields of an existing event and replaces its
// category links. Callers run it inside a transaction.
func (r *PostgreSQLEventRepository) Update(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events SET title = $1, description = $2, start_date = $3, end_date = $4,
	          location = $5, capacity = $6, status = $7, updated_at = NOW()
			  WHERE id = $8 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		event.Title, event.Description, event.StartDate, event.EndDate,
		event.Location, event.Capacity, event.Status, event.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update event")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}

	deleteLinks := `DELETE FROM event_categories WHERE event_id = $1`
	if _, err := querier.ExecContext(ctx, deleteLinks, event.ID); err != nil {
		return apperrors.Wrap(err, "failed to clear event categories")
	}

	return r.insertCategoryLinks(ctx, event.ID, event.CategoryIDs)
}

// SoftDelete marks an event as deleted
func (r *PostgreSQLEventRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete event")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Restore reverses a soft delete
func (r *PostgreSQLEventRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events SET deleted_at = NULL, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to restore event")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrEventNotDeleted
	}
	return nil
}

func (r *PostgreSQLEventRepository) insertCategoryLinks(ctx context.Context, eventID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO event_categories (event_id, category_id) VALUES ($1, $2)`
	for _, categoryID := range categoryIDs {
		if _, err := querier.ExecContext(ctx, query, eventID, categoryID); err != nil {
			if isPostgreSQLForeignKeyViolation(err) {
				return domain.ErrCategoryNotFound
			}
			return apperrors.Wrap(err, "failed to link event category")
		}
	}
	return nil
}

func (r *PostgreSQLEventRepository) getOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	var event domain.Event
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&event.ID, &event.Title, &event.Description, &event.StartDate, &event.EndDate,
		&event.Location, &event.Capacity, &event.Status, &event.CreatedBy,
		&event.DeletedAt, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get event")
	}

	if err := r.loadCategoryLinks(ctx, []*domain.Event{&event}); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *PostgreSQLEventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.StartDate, &event.EndDate,
			&event.Location, &event.Capacity, &event.Status, &event.CreatedBy,
			&event.DeletedAt, &event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event")
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}

	if err := r.loadCategoryLinks(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// loadCategoryLinks fills CategoryIDs for every event in a single query.
func (r *PostgreSQLEventRepository) loadCategoryLinks(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, r.db)

	eventIDs := make([]uuid.UUID, len(events))
	byID := make(map[uuid.UUID]*domain.Event, len(events))
	for i, event := range events {
		eventIDs[i] = event.ID
		byID[event.ID] = event
	}

	query := `SELECT event_id, category_id FROM event_categories WHERE event_id = ANY($1)`

	rows, err := querier.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return apperrors.Wrap(err, "failed to load event categories")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var eventID, categoryID uuid.UUID
		if err := rows.Scan(&eventID, &categoryID); err != nil {
			return apperrors.Wrap(err, "failed to scan event category")
		}
		if event, ok := byID[eventID]; ok {
			event.CategoryIDs = append(event.CategoryIDs, categoryID)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(err, "failed to iterate event categories")
	}
	return nil
}

// isPostgreSQLForeignKeyViolation checks if the error is a PostgreSQL foreign key violation
func isPostgreSQLForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

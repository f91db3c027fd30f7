package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/database"
	"github.com/afga-dev/attendify-api/internal/event/domain"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// MySQLEventRepository handles event persistence for MySQL
type MySQLEventRepository struct {
	db *sql.DB
}

// NewMySQLEventRepository creates a new MySQLEventRepository
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{
		db: db,
	}
}

// Create inserts a new event together with its category links. Callers run it
// inside a transaction so the event and its links commit atomically.
func (r *MySQLEventRepository) Create(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO events (id, title, description, start_date, end_date, location,
	          capacity, status, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(6), NOW(6))`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	createdByBytes, err := event.CreatedBy.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes, event.Title, event.Description, event.StartDate, event.EndDate,
		event.Location, event.Capacity, event.Status, createdByBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create event")
	}

	return r.insertCategoryLinks(ctx, event.ID, event.CategoryIDs)
}

// GetByID retrieves an event by ID, excluding soft-deleted events
func (r *MySQLEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.getOne(ctx, query, idBytes)
}

// List retrieves events matching the filter, excluding soft-deleted events
func (r *MySQLEventRepository) List(ctx context.Context, filter domain.ListEventsFilter, limit, offset int) ([]*domain.Event, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.CategoryID != nil {
		categoryBytes, err := filter.CategoryID.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal UUID")
		}
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM event_categories ec WHERE ec.event_id = events.id AND ec.category_id = ?)")
		args = append(args, categoryBytes)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events WHERE %s
			  ORDER BY start_date LIMIT ? OFFSET ?`,
		strings.Join(conditions, " AND "))

	return r.list(ctx, query, args...)
}

// ListDeleted retrieves soft-deleted events ordered by start date
func (r *MySQLEventRepository) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	query := `SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events WHERE deleted_at IS NOT NULL
			  ORDER BY start_date LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// ListWithDeleted retrieves events ordered by start date, including soft-deleted ones
func (r *MySQLEventRepository) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	query := `SELECT id, title, description, start_date, end_date, location, capacity,
	          status, created_by, deleted_at, created_at, updated_at
			  FROM events
			  ORDER BY start_date LIMIT ? OFFSET ?`

	return r.list(ctx, query, limit, offset)
}

// Update persists the mutable fields of an existing event and replaces its
// category links. Callers run it inside a transaction.
func (r *MySQLEventRepository) Update(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events SET title = ?, description = ?, start_date = ?, end_date = ?,
	          location = ?, capacity = ?, status = ?, updated_at = NOW(6)
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query,
		event.Title, event.Description, event.StartDate, event.EndDate,
		event.Location, event.Capacity, event.Status, idBytes,
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

	deleteLinks := `DELETE FROM event_categories WHERE event_id = ?`
	if _, err := querier.ExecContext(ctx, deleteLinks, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to clear event categories")
	}

	return r.insertCategoryLinks(ctx, event.ID, event.CategoryIDs)
}

// SoftDelete marks an event as deleted
func (r *MySQLEventRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events SET deleted_at = NOW(6), updated_at = NOW(6)
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
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
func (r *MySQLEventRepository) Restore(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events SET deleted_at = NULL, updated_at = NOW(6)
			  WHERE id = ? AND deleted_at IS NOT NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
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

func (r *MySQLEventRepository) insertCategoryLinks(ctx context.Context, eventID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, r.db)

	eventBytes, err := eventID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO event_categories (event_id, category_id) VALUES (?, ?)`
	for _, categoryID := range categoryIDs {
		categoryBytes, err := categoryID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal UUID")
		}
		if _, err := querier.ExecContext(ctx, query, eventBytes, categoryBytes); err != nil {
			if isMySQLForeignKeyViolation(err) {
				return domain.ErrCategoryNotFound
			}
			return apperrors.Wrap(err, "failed to link event category")
		}
	}
	return nil
}

func (r *MySQLEventRepository) getOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	var event domain.Event
	var idBytes, createdByBytes []byte
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes, &event.Title, &event.Description, &event.StartDate, &event.EndDate,
		&event.Location, &event.Capacity, &event.Status, &createdByBytes,
		&event.DeletedAt, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get event")
	}

	// Convert bytes back to UUIDs
	if err := event.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := event.CreatedBy.UnmarshalBinary(createdByBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	if err := r.loadCategoryLinks(ctx, []*domain.Event{&event}); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *MySQLEventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		var idBytes, createdByBytes []byte
		err := rows.Scan(
			&idBytes, &event.Title, &event.Description, &event.StartDate, &event.EndDate,
			&event.Location, &event.Capacity, &event.Status, &createdByBytes,
			&event.DeletedAt, &event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event")
		}
		if err := event.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := event.CreatedBy.UnmarshalBinary(createdByBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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
func (r *MySQLEventRepository) loadCategoryLinks(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, r.db)

	args := make([]any, 0, len(events))
	byID := make(map[uuid.UUID]*domain.Event, len(events))
	for _, event := range events {
		eventBytes, err := event.ID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal UUID")
		}
		args = append(args, eventBytes)
		byID[event.ID] = event
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	query := fmt.Sprintf(
		`SELECT event_id, category_id FROM event_categories WHERE event_id IN (%s)`, placeholders)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to load event categories")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var eventBytes, categoryBytes []byte
		if err := rows.Scan(&eventBytes, &categoryBytes); err != nil {
			return apperrors.Wrap(err, "failed to scan event category")
		}
		var eventID, categoryID uuid.UUID
		if err := eventID.UnmarshalBinary(eventBytes); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := categoryID.UnmarshalBinary(categoryBytes); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal UUID")
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

// isMySQLForeignKeyViolation checks if the error is a MySQL foreign key violation
func isMySQLForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1452: Cannot add or update a child row"
	return strings.Contains(errMsg, "foreign key constraint") || strings.Contains(errMsg, "1452")
}

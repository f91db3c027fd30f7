// Package repository provides data persistence implementations for auth tokens.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/auth/domain"
	"github.com/afga-dev/attendify-api/internal/database"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// PostgreSQLTokenRepository handles token persistence for PostgreSQL
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQLTokenRepository
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{
		db: db,
	}
}

// Create inserts a new token
func (r *PostgreSQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tokens (id, value, kind, purpose, revoked, expired, user_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		token.ID, token.Value, token.Kind, token.Purpose, token.Revoked, token.Expired, token.UserID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// Update persists the revoked and expired flags of an existing token
func (r *PostgreSQLTokenRepository) Update(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tokens SET revoked = $1, expired = $2, updated_at = NOW() WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, token.Revoked, token.Expired, token.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token")
	}
	return nil
}

// GetByValue retrieves a token by its opaque value
func (r *PostgreSQLTokenRepository) GetByValue(ctx context.Context, value string) (*domain.Token, error) {
	var token domain.Token
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, value, kind, purpose, revoked, expired, user_id, created_at, updated_at
			  FROM tokens WHERE value = $1`

	err := querier.QueryRowContext(ctx, query, value).Scan(
		&token.ID, &token.Value, &token.Kind, &token.Purpose, &token.Revoked,
		&token.Expired, &token.UserID, &token.CreatedAt, &token.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by value")
	}

	return &token, nil
}

// ListActiveByUser retrieves the usable refresh tokens of a user
func (r *PostgreSQLTokenRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, value, kind, purpose, revoked, expired, user_id, created_at, updated_at
			  FROM tokens
			  WHERE user_id = $1 AND kind = $2 AND revoked = false AND expired = false
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, userID, domain.RefreshKind)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list active tokens")
	}
	defer func() { _ = rows.Close() }()

	var tokens []*domain.Token
	for rows.Next() {
		var token domain.Token
		err := rows.Scan(
			&token.ID, &token.Value, &token.Kind, &token.Purpose, &token.Revoked,
			&token.Expired, &token.UserID, &token.CreatedAt, &token.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan token")
		}
		tokens = append(tokens, &token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tokens")
	}

	return tokens, nil
}

// RevokeAllForUser marks every usable token of a user as revoked and expired
func (r *PostgreSQLTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tokens SET revoked = true, expired = true, updated_at = NOW()
			  WHERE user_id = $1 AND revoked = false AND expired = false`

	_, err := querier.ExecContext(ctx, query, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke tokens for user")
	}
	return nil
}

// CountCreatedBefore counts token rows created before the cutoff
func (r *PostgreSQLTokenRepository) CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM tokens WHERE created_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count stale tokens")
	}
	return count, nil
}

// DeleteCreatedBefore removes token rows created before the cutoff
func (r *PostgreSQLTokenRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM tokens WHERE created_at < $1`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete stale tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

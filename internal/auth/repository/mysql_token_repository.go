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

// MySQLTokenRepository handles token persistence for MySQL
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQLTokenRepository
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{
		db: db,
	}
}

// Create inserts a new token
func (r *MySQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tokens (id, value, kind, purpose, revoked, expired, user_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userIDBytes, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes, token.Value, token.Kind, token.Purpose, token.Revoked, token.Expired, userIDBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// Update persists the revoked and expired flags of an existing token
func (r *MySQLTokenRepository) Update(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tokens SET revoked = ?, expired = ?, updated_at = NOW() WHERE id = ?`

	idBytes, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, token.Revoked, token.Expired, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token")
	}
	return nil
}

// GetByValue retrieves a token by its opaque value
func (r *MySQLTokenRepository) GetByValue(ctx context.Context, value string) (*domain.Token, error) {
	var token domain.Token
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, value, kind, purpose, revoked, expired, user_id, created_at, updated_at
			  FROM tokens WHERE value = ?`

	var idBytes, userIDBytes []byte
	err := querier.QueryRowContext(ctx, query, value).Scan(
		&idBytes, &token.Value, &token.Kind, &token.Purpose, &token.Revoked,
		&token.Expired, &userIDBytes, &token.CreatedAt, &token.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by value")
	}

	// Convert bytes back to UUIDs
	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := token.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &token, nil
}

// ListActiveByUser retrieves the usable refresh tokens of a user
func (r *MySQLTokenRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, value, kind, purpose, revoked, expired, user_id, created_at, updated_at
			  FROM tokens
			  WHERE user_id = ? AND kind = ? AND revoked = false AND expired = false
			  ORDER BY created_at DESC`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, userIDBytes, domain.RefreshKind)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list active tokens")
	}
	defer func() { _ = rows.Close() }()

	var tokens []*domain.Token
	for rows.Next() {
		var token domain.Token
		var idBytes, ownerBytes []byte
		err := rows.Scan(
			&idBytes, &token.Value, &token.Kind, &token.Purpose, &token.Revoked,
			&token.Expired, &ownerBytes, &token.CreatedAt, &token.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan token")
		}
		if err := token.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := token.UserID.UnmarshalBinary(ownerBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		tokens = append(tokens, &token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tokens")
	}

	return tokens, nil
}

// RevokeAllForUser marks every usable token of a user as revoked and expired
func (r *MySQLTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tokens SET revoked = true, expired = true, updated_at = NOW()
			  WHERE user_id = ? AND revoked = false AND expired = false`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, userIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke tokens for user")
	}
	return nil
}

// CountCreatedBefore counts token rows created before the cutoff
func (r *MySQLTokenRepository) CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM tokens WHERE created_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count stale tokens")
	}
	return count, nil
}

// DeleteCreatedBefore removes token rows created before the cutoff
func (r *MySQLTokenRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM tokens WHERE created_at < ?`

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

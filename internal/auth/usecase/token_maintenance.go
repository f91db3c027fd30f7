package usecase

import (
	"context"
	"time"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
)

// TokenMaintenanceUseCase defines the housekeeping operations on the token store.
type TokenMaintenanceUseCase interface {
	// CleanupExpired removes token rows created more than the given number of
	// days ago. A row that old is past any refresh lifetime and can never
	// authenticate again. With dryRun set it only reports the count.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}

// TokenMaintenanceRepository defines the store operations cleanup needs.
type TokenMaintenanceRepository interface {
	CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type tokenMaintenanceUseCase struct {
	tokenRepo TokenMaintenanceRepository
}

// NewTokenMaintenanceUseCase creates a new TokenMaintenanceUseCase.
func NewTokenMaintenanceUseCase(tokenRepo TokenMaintenanceRepository) TokenMaintenanceUseCase {
	return &tokenMaintenanceUseCase{tokenRepo: tokenRepo}
}

func (uc *tokenMaintenanceUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.New("days must not be negative")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		return uc.tokenRepo.CountCreatedBefore(ctx, cutoff)
	}
	return uc.tokenRepo.DeleteCreatedBefore(ctx, cutoff)
}

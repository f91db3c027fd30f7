// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/database"
	"github.com/afga-dev/attendify-api/internal/user/domain"
)

// UseCase defines the interface for user business logic operations.
// Account creation and credential changes live in the auth context; this
// use case covers profile reads and administrative account management.
type UseCase interface {
	Me(ctx context.Context, principal *authz.Principal) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error)
	AssignRoles(ctx context.Context, id uuid.UUID, roles []authz.Role) (*domain.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserRepository interface defines user repository operations.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error)
	ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
) UseCase {
	return &UserUseCase{
		txManager: txManager,
		userRepo:  userRepo,
	}
}

// Me returns the account of the authenticated caller.
func (uc *UserUseCase) Me(ctx context.Context, principal *authz.Principal) (*domain.User, error) {
	if principal == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	return uc.userRepo.GetByID(ctx, principal.UserID)
}

// GetByID retrieves a user by ID. Soft-deleted accounts are not visible here.
func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email.
func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, email)
}

// List returns active accounts ordered by creation time.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, limit, offset)
}

// ListDeleted returns soft-deleted accounts ordered by creation time.
func (uc *UserUseCase) ListDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return uc.userRepo.ListDeleted(ctx, limit, offset)
}

// ListWithDeleted returns accounts ordered by creation time regardless of
// soft-delete state.
func (uc *UserUseCase) ListWithDeleted(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return uc.userRepo.ListWithDeleted(ctx, limit, offset)
}

// AssignRoles replaces the role set of an account. Outstanding access tokens
// keep their old roles until they expire; the next refresh picks up the new
// set because refresh re-reads roles from the store.
func (uc *UserUseCase) AssignRoles(
	ctx context.Context,
	id uuid.UUID,
	roles []authz.Role,
) (*domain.User, error) {
	// Reject unknown role names before touching the store
	parsed, err := authz.ParseRoles(authz.RoleNames(roles))
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err = uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Roles = parsed
		return uc.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SoftDelete marks an account as deleted. The row is kept and can be restored.
func (uc *UserUseCase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return uc.userRepo.SoftDelete(ctx, id)
}

// Restore brings a soft-deleted account back.
func (uc *UserUseCase) Restore(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := uc.userRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, id)
}

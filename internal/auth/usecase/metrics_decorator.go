package usecase

import (
	"context"
	"time"

	"github.com/afga-dev/attendify-api/internal/auth/domain"
	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Register records metrics for self-service registration.
func (a *authUseCaseWithMetrics) Register(ctx context.Context, input *domain.RegisterInput) (*domain.AuthTokens, error) {
	start := time.Now()
	tokens, err := a.next.Register(ctx, input)
	a.record(ctx, "register", start, err)
	return tokens, err
}

// RegisterWithRoles records metrics for admin-driven registration.
func (a *authUseCaseWithMetrics) RegisterWithRoles(ctx context.Context, input *domain.RegisterWithRolesInput) (*domain.AuthTokens, error) {
	start := time.Now()
	tokens, err := a.next.RegisterWithRoles(ctx, input)
	a.record(ctx, "register_with_roles", start, err)
	return tokens, err
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(ctx context.Context, input *domain.LoginInput) (*domain.AuthTokens, error) {
	start := time.Now()
	tokens, err := a.next.Login(ctx, input)
	a.record(ctx, "login", start, err)
	return tokens, err
}

// Refresh records metrics for token refresh operations.
func (a *authUseCaseWithMetrics) Refresh(ctx context.Context, authorizationHeader string) (string, error) {
	start := time.Now()
	accessToken, err := a.next.Refresh(ctx, authorizationHeader)
	a.record(ctx, "refresh", start, err)
	return accessToken, err
}

// Logout records metrics for logout operations.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, authorizationHeader string) (domain.LogoutResult, error) {
	start := time.Now()
	result, err := a.next.Logout(ctx, authorizationHeader)
	a.record(ctx, "logout", start, err)
	return result, err
}

// ChangePassword records metrics for password change operations.
func (a *authUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	principal *authz.Principal,
	input *domain.ChangePasswordInput,
) (domain.ChangePasswordResult, error) {
	start := time.Now()
	result, err := a.next.ChangePassword(ctx, principal, input)
	a.record(ctx, "change_password", start, err)
	return result, err
}

// ChangeEmail records metrics for email change operations.
func (a *authUseCaseWithMetrics) ChangeEmail(
	ctx context.Context,
	principal *authz.Principal,
	input *domain.ChangeEmailInput,
) (domain.ChangeEmailResult, error) {
	start := time.Now()
	result, err := a.next.ChangeEmail(ctx, principal, input)
	a.record(ctx, "change_email", start, err)
	return result, err
}

// Authenticate records metrics for bearer token authentication.
func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, authorizationHeader string) (*authz.Principal, error) {
	start := time.Now()
	principal, err := a.next.Authenticate(ctx, authorizationHeader)
	a.record(ctx, "authenticate", start, err)
	return principal, err
}

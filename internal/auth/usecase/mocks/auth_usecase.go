// Package mocks provides mock implementations for testing decorators and HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/afga-dev/attendify-api/internal/auth/domain"
	"github.com/afga-dev/attendify-api/internal/authz"
)

// MockAuthUseCase is a mock implementation of AuthUseCase for testing.
type MockAuthUseCase struct {
	mock.Mock
}

// Register mocks the Register method of AuthUseCase.
func (m *MockAuthUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*authDomain.AuthTokens, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AuthTokens), args.Error(1)
}

// RegisterWithRoles mocks the RegisterWithRoles method of AuthUseCase.
func (m *MockAuthUseCase) RegisterWithRoles(
	ctx context.Context,
	input *authDomain.RegisterWithRolesInput,
) (*authDomain.AuthTokens, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AuthTokens), args.Error(1)
}

// Login mocks the Login method of AuthUseCase.
func (m *MockAuthUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.AuthTokens, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AuthTokens), args.Error(1)
}

// Refresh mocks the Refresh method of AuthUseCase.
func (m *MockAuthUseCase) Refresh(ctx context.Context, authorizationHeader string) (string, error) {
	args := m.Called(ctx, authorizationHeader)
	return args.String(0), args.Error(1)
}

// Logout mocks the Logout method of AuthUseCase.
func (m *MockAuthUseCase) Logout(
	ctx context.Context,
	authorizationHeader string,
) (authDomain.LogoutResult, error) {
	args := m.Called(ctx, authorizationHeader)
	return args.Get(0).(authDomain.LogoutResult), args.Error(1)
}

// ChangePassword mocks the ChangePassword method of AuthUseCase.
func (m *MockAuthUseCase) ChangePassword(
	ctx context.Context,
	principal *authz.Principal,
	input *authDomain.ChangePasswordInput,
) (authDomain.ChangePasswordResult, error) {
	args := m.Called(ctx, principal, input)
	return args.Get(0).(authDomain.ChangePasswordResult), args.Error(1)
}

// ChangeEmail mocks the ChangeEmail method of AuthUseCase.
func (m *MockAuthUseCase) ChangeEmail(
	ctx context.Context,
	principal *authz.Principal,
	input *authDomain.ChangeEmailInput,
) (authDomain.ChangeEmailResult, error) {
	args := m.Called(ctx, principal, input)
	return args.Get(0).(authDomain.ChangeEmailResult), args.Error(1)
}

// Authenticate mocks the Authenticate method of AuthUseCase.
func (m *MockAuthUseCase) Authenticate(
	ctx context.Context,
	authorizationHeader string,
) (*authz.Principal, error) {
	args := m.Called(ctx, authorizationHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.Principal), args.Error(1)
}

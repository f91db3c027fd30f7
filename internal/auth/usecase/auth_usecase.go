package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/auth/domain"
	authService "github.com/afga-dev/attendify-api/internal/auth/service"
	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/config"
	"github.com/afga-dev/attendify-api/internal/database"
	userDomain "github.com/afga-dev/attendify-api/internal/user/domain"

	apperrors "github.com/afga-dev/attendify-api/internal/errors"
	appValidation "github.com/afga-dev/attendify-api/internal/validation"
)

const bearerPrefix = "Bearer "

// authUseCase implements AuthUseCase. It is the only writer of token rows;
// every mutation runs inside a single transaction.
type authUseCase struct {
	config          *config.Config
	txManager       database.TxManager
	tokenRepo       TokenRepository
	userRepo        UserRepository
	tokenCodec      authService.TokenCodec
	passwordService authService.PasswordService
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	tokenRepo TokenRepository,
	userRepo UserRepository,
	tokenCodec authService.TokenCodec,
	passwordService authService.PasswordService,
) AuthUseCase {
	return &authUseCase{
		config:          cfg,
		txManager:       txManager,
		tokenRepo:       tokenRepo,
		userRepo:        userRepo,
		tokenCodec:      tokenCodec,
		passwordService: passwordService,
	}
}

// parseBearer extracts the token value from an Authorization header.
func parseBearer(authorizationHeader string) (string, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return "", domain.ErrMalformedHeader
	}
	value := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, bearerPrefix))
	if value == "" {
		return "", domain.ErrMalformedHeader
	}
	return value, nil
}

func validateName(name *string) *validation.FieldRules {
	return validation.Field(name,
		validation.Required.Error("name is required"),
		appValidation.NotBlank,
		validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
	)
}

func validateEmail(email *string) *validation.FieldRules {
	return validation.Field(email,
		validation.Required.Error("email is required"),
		appValidation.NotBlank,
		appValidation.Email,
		validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
	)
}

func validatePassword(password *string) *validation.FieldRules {
	return validation.Field(password,
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		appValidation.PasswordStrength{
			MinLength:      8,
			RequireUpper:   true,
			RequireLower:   true,
			RequireNumber:  true,
			RequireSpecial: true,
		},
	)
}

// issueTokens mints an access/refresh pair for the user and returns the
// refresh token row to persist. Access tokens are stateless and never stored.
func (a *authUseCase) issueTokens(user *userDomain.User) (*domain.AuthTokens, *domain.Token, error) {
	accessToken, err := a.tokenCodec.Issue(
		user.ID, user.Roles, domain.AccessKind, a.config.AccessTokenExpiration,
	)
	if err != nil {
		return nil, nil, err
	}

	refreshToken, err := a.tokenCodec.Issue(
		user.ID, user.Roles, domain.RefreshKind, a.config.RefreshTokenExpiration,
	)
	if err != nil {
		return nil, nil, err
	}

	row := &domain.Token{
		ID:      uuid.Must(uuid.NewV7()),
		Value:   refreshToken,
		Kind:    domain.RefreshKind,
		Purpose: domain.SessionPurpose,
		UserID:  user.ID,
	}

	return &domain.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, row, nil
}

// register creates the user and its first session inside one transaction.
// When user creation is rejected (duplicate email) no token row is written.
func (a *authUseCase) register(ctx context.Context, user *userDomain.User) (*domain.AuthTokens, error) {
	tokens, refreshRow, err := a.issueTokens(user)
	if err != nil {
		return nil, err
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return a.tokenRepo.Create(ctx, refreshRow)
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Register creates a user with the default USER role and opens a session.
func (a *authUseCase) Register(ctx context.Context, input *domain.RegisterInput) (*domain.AuthTokens, error) {
	err := validation.ValidateStruct(input,
		validateName(&input.Name),
		validateEmail(&input.Email),
		validatePassword(&input.Password),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	hashedPassword, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &userDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Password: hashedPassword,
		Roles:    []authz.Role{authz.RoleUser},
	}

	return a.register(ctx, user)
}

// RegisterWithRoles creates a user with an explicit role set. Guarding the
// caller's force-create permission happens at the route, before this runs.
func (a *authUseCase) RegisterWithRoles(ctx context.Context, input *domain.RegisterWithRolesInput) (*domain.AuthTokens, error) {
	err := validation.ValidateStruct(input,
		validateName(&input.Name),
		validateEmail(&input.Email),
		validatePassword(&input.Password),
		validation.Field(&input.Roles,
			validation.Required.Error("at least one role is required"),
		),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	// Reject unknown role names before touching the store
	if _, err := authz.ParseRoles(authz.RoleNames(input.Roles)); err != nil {
		return nil, err
	}

	hashedPassword, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &userDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Password: hashedPassword,
		Roles:    input.Roles,
	}

	return a.register(ctx, user)
}

// Login verifies credentials and opens a new session. The same
// ErrInvalidCredentials covers unknown email and wrong password so responses
// never reveal whether the email exists.
func (a *authUseCase) Login(ctx context.Context, input *domain.LoginInput) (*domain.AuthTokens, error) {
	err := validation.ValidateStruct(input,
		validateEmail(&input.Email),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
		),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Compare(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, refreshRow, err := a.issueTokens(user)
	if err != nil {
		return nil, err
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		return a.tokenRepo.Create(ctx, refreshRow)
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Refresh mints a new access token bound to the refresh token's subject. The
// refresh token is not rotated; it stays usable until its own expiry or an
// explicit revocation.
func (a *authUseCase) Refresh(ctx context.Context, authorizationHeader string) (string, error) {
	value, err := parseBearer(authorizationHeader)
	if err != nil {
		return "", err
	}

	claims, err := a.tokenCodec.Parse(value)
	if err != nil {
		return "", err
	}
	if claims.Kind != domain.RefreshKind {
		return "", domain.ErrInvalidOrExpiredToken
	}

	stored, err := a.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		if apperrors.Is(err, domain.ErrTokenNotFound) {
			return "", domain.ErrInvalidOrExpiredToken
		}
		return "", err
	}
	if !stored.Usable() {
		return "", domain.ErrInvalidOrExpiredToken
	}

	// The subject must still resolve to an existing user; roles are read
	// fresh so a role change takes effect on the next refresh.
	user, err := a.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return "", err
	}

	return a.tokenCodec.Issue(user.ID, user.Roles, domain.AccessKind, a.config.AccessTokenExpiration)
}

// Logout revokes the presented refresh token. Unknown and already-revoked
// tokens are expected branches and come back as values, not errors.
func (a *authUseCase) Logout(ctx context.Context, authorizationHeader string) (domain.LogoutResult, error) {
	value, err := parseBearer(authorizationHeader)
	if err != nil {
		return "", err
	}

	stored, err := a.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		if apperrors.Is(err, domain.ErrTokenNotFound) {
			return domain.LogoutTokenNotFound, nil
		}
		return "", err
	}
	if !stored.Usable() {
		return domain.LogoutAlreadyRevoked, nil
	}

	stored.Revoked = true
	stored.Expired = true

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		return a.tokenRepo.Update(ctx, stored)
	})
	if err != nil {
		return "", err
	}

	return domain.LogoutSuccess, nil
}

// ChangePassword replaces the caller's password hash and revokes every active
// refresh token the caller owns. A concurrent refresh observes either the
// pre-change state or the post-change state, never a partial one.
func (a *authUseCase) ChangePassword(
	ctx context.Context,
	principal *authz.Principal,
	input *domain.ChangePasswordInput,
) (domain.ChangePasswordResult, error) {
	if principal == nil {
		return domain.ChangePasswordNoPrincipal, nil
	}

	err := validation.ValidateStruct(input,
		validation.Field(&input.OldPassword,
			validation.Required.Error("old password is required"),
		),
		validatePassword(&input.NewPassword),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return "", err
	}

	user, err := a.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return "", err
	}

	if !a.passwordService.Compare(input.OldPassword, user.Password) {
		return domain.ChangePasswordMismatch, nil
	}
	if input.NewPassword == input.OldPassword {
		return domain.ChangePasswordNoOp, nil
	}

	hashedPassword, err := a.passwordService.Hash(input.NewPassword)
	if err != nil {
		return "", err
	}
	user.Password = hashedPassword

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return a.tokenRepo.RevokeAllForUser(ctx, user.ID)
	})
	if err != nil {
		return "", err
	}

	return domain.ChangePasswordSuccess, nil
}

// ChangeEmail replaces the caller's email and revokes every active refresh
// token the caller owns, identical to a password change.
func (a *authUseCase) ChangeEmail(
	ctx context.Context,
	principal *authz.Principal,
	input *domain.ChangeEmailInput,
) (domain.ChangeEmailResult, error) {
	if principal == nil {
		return domain.ChangeEmailNoPrincipal, nil
	}

	err := validation.ValidateStruct(input,
		validateEmail(&input.CurrentEmail),
		validateEmail(&input.NewEmail),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return "", err
	}

	currentEmail := normalizeEmail(input.CurrentEmail)
	newEmail := normalizeEmail(input.NewEmail)

	user, err := a.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return "", err
	}

	if user.Email != currentEmail {
		return domain.ChangeEmailMismatch, nil
	}
	if newEmail == currentEmail {
		return domain.ChangeEmailNoOp, nil
	}

	user.Email = newEmail

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return a.tokenRepo.RevokeAllForUser(ctx, user.ID)
	})
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserAlreadyExists) {
			return domain.ChangeEmailDuplicate, nil
		}
		return "", err
	}

	return domain.ChangeEmailSuccess, nil
}

// Authenticate resolves the principal from a bearer access token. No store
// lookup happens here: access tokens are stateless by design.
func (a *authUseCase) Authenticate(ctx context.Context, authorizationHeader string) (*authz.Principal, error) {
	value, err := parseBearer(authorizationHeader)
	if err != nil {
		return nil, err
	}

	claims, err := a.tokenCodec.Parse(value)
	if err != nil {
		return nil, err
	}
	if claims.Kind != domain.AccessKind {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	return authz.NewPrincipal(claims.UserID, claims.Roles), nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

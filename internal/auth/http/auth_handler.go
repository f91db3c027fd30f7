// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/afga-dev/attendify-api/internal/auth/domain"
	"github.com/afga-dev/attendify-api/internal/auth/http/dto"
	authUseCase "github.com/afga-dev/attendify-api/internal/auth/usecase"
	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/httputil"
	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// AuthHandler handles HTTP requests for the session lifecycle.
// It coordinates registration, login, refresh, logout and credential changes
// with the AuthUseCase.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUC,
		logger:      logger,
	}
}

// RegisterHandler creates a new account and opens a session.
// POST /v1/auth/register - No authentication required.
// Returns 201 Created with an access/refresh token pair.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	tokens, err := h.authUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokensToResponse(tokens))
}

// RegisterWithRolesHandler creates a new account with an explicit role set.
// POST /v1/auth/register-with-roles - Requires the USER_FORCE_CREATE permission,
// enforced by the route guard.
// Returns 201 Created with an access/refresh token pair for the new account.
func (h *AuthHandler) RegisterWithRolesHandler(c *gin.Context) {
	var req dto.RegisterWithRolesRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	roles, err := authz.ParseRoles(req.Roles)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	input := &authDomain.RegisterWithRolesInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    roles,
	}

	tokens, err := h.authUseCase.RegisterWithRoles(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokensToResponse(tokens))
}

// LoginHandler authenticates credentials and opens a session.
// POST /v1/auth/login - No authentication required.
// Returns 200 OK with an access/refresh token pair, or 401 for unknown email
// and password mismatch alike.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	tokens, err := h.authUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokensToResponse(tokens))
}

// RefreshHandler issues a new access token from a refresh token.
// POST /v1/auth/refresh - The refresh token travels in the Authorization header.
// Returns 200 OK with a new access token. The refresh token is not rotated.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	accessToken, err := h.authUseCase.Refresh(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AccessTokenResponse{AccessToken: accessToken})
}

// LogoutHandler revokes the presented refresh token.
// POST /v1/auth/logout - The refresh token travels in the Authorization header.
// Returns 200 OK on revocation, 404 when no such token exists, 409 when the
// token was already revoked or expired.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	result, err := h.authUseCase.Logout(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.LogoutResponse{Result: result}

	switch result {
	case authDomain.LogoutSuccess:
		c.JSON(http.StatusOK, response)
	case authDomain.LogoutTokenNotFound:
		c.JSON(http.StatusNotFound, response)
	case authDomain.LogoutAlreadyRevoked:
		c.JSON(http.StatusConflict, response)
	}
}

// ChangePasswordHandler replaces the caller's password and revokes every
// active session.
// PUT /v1/auth/password - Requires authentication.
// Returns 200 OK on success, 409 when the current password does not match or
// the new password equals the old one.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	var req dto.ChangePasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, _ := GetPrincipal(c.Request.Context())

	input := &authDomain.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}

	result, err := h.authUseCase.ChangePassword(c.Request.Context(), principal, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ChangePasswordResponse{Result: result}

	switch result {
	case authDomain.ChangePasswordSuccess:
		c.JSON(http.StatusOK, response)
	case authDomain.ChangePasswordNoPrincipal:
		c.JSON(http.StatusBadRequest, response)
	default:
		c.JSON(http.StatusConflict, response)
	}
}

// ChangeEmailHandler replaces the caller's email and revokes every active
// session.
// PUT /v1/auth/email - Requires authentication.
// Returns 200 OK on success, 409 when the submitted current email does not
// match, equals the new one, or the new email is already taken.
func (h *AuthHandler) ChangeEmailHandler(c *gin.Context) {
	var req dto.ChangeEmailRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, _ := GetPrincipal(c.Request.Context())

	input := &authDomain.ChangeEmailInput{
		CurrentEmail: req.CurrentEmail,
		NewEmail:     req.NewEmail,
	}

	result, err := h.authUseCase.ChangeEmail(c.Request.Context(), principal, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ChangeEmailResponse{Result: result}

	switch result {
	case authDomain.ChangeEmailSuccess:
		c.JSON(http.StatusOK, response)
	case authDomain.ChangeEmailNoPrincipal:
		c.JSON(http.StatusBadRequest, response)
	default:
		c.JSON(http.StatusConflict, response)
	}
}

// Package http provides HTTP handlers for user-related operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/afga-dev/attendify-api/internal/auth/http"
	"github.com/afga-dev/attendify-api/internal/authz"
	"github.com/afga-dev/attendify-api/internal/httputil"
	"github.com/afga-dev/attendify-api/internal/user/http/dto"
	"github.com/afga-dev/attendify-api/internal/user/usecase"
	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// parseUserID extracts and validates the :id path parameter.
func parseUserID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: must be a valid UUID")
	}
	return id, nil
}

// MeHandler returns the account of the authenticated caller.
// GET /v1/users/me - Requires authentication.
func (h *UserHandler) MeHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	user, err := h.userUseCase.Me(c.Request.Context(), principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// GetHandler returns a single account by ID.
// GET /v1/users/:id - Requires the USER_FORCE_READ permission.
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// ListHandler returns active accounts with offset/limit pagination.
// GET /v1/users - Requires the USER_READ_ALL permission.
func (h *UserHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// ListDeletedHandler returns soft-deleted accounts with offset/limit pagination.
// GET /v1/users/deleted - Requires the USER_READ_DELETED permission.
func (h *UserHandler) ListDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.ListDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// ListWithDeletedHandler returns accounts regardless of soft-delete state.
// GET /v1/users/with-deleted - Requires the USER_READ_WITH_DELETED permission.
func (h *UserHandler) ListWithDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.ListWithDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// AssignRolesHandler replaces the role set of an account.
// PUT /v1/users/:id/roles - Requires the USER_FORCE_UPDATE permission.
// Outstanding access tokens keep the old roles until expiry.
func (h *UserHandler) AssignRolesHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.AssignRolesRequest
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

	user, err := h.userUseCase.AssignRoles(c.Request.Context(), id, roles)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeleteHandler soft-deletes an account.
// DELETE /v1/users/:id - Requires the USER_FORCE_DELETE permission.
// Returns 204 No Content.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.SoftDelete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreHandler brings a soft-deleted account back.
// POST /v1/users/:id/restore - Requires the USER_RESTORE permission.
func (h *UserHandler) RestoreHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Restore(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

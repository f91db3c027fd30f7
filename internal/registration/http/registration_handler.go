// Package http provides HTTP handlers for registration operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/afga-dev/attendify-api/internal/auth/http"
	"github.com/afga-dev/attendify-api/internal/httputil"
	"github.com/afga-dev/attendify-api/internal/registration/http/dto"
	"github.com/afga-dev/attendify-api/internal/registration/usecase"
)

// RegistrationHandler handles registration-related HTTP requests.
type RegistrationHandler struct {
	registrationUseCase usecase.UseCase
	logger              *slog.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationUseCase usecase.UseCase, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUseCase: registrationUseCase,
		logger:              logger,
	}
}

func parsePathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a valid UUID", name)
	}
	return id, nil
}

// RegisterHandler signs the caller up for an event.
// POST /v1/events/:id/registrations - Requires the EVENT_REGISTRATION_CREATE permission.
func (h *RegistrationHandler) RegisterHandler(c *gin.Context) {
	eventID, err := parsePathID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	registration, err := h.registrationUseCase.Register(c.Request.Context(), principal, eventID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRegistrationToResponse(registration))
}

// GetHandler returns a single registration. The owner can read their own;
// anyone else needs EVENT_REGISTRATION_FORCE_READ.
// GET /v1/registrations/:id
func (h *RegistrationHandler) GetHandler(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	registration, err := h.registrationUseCase.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationToResponse(registration))
}

// ListByEventHandler returns live registrations for an event.
// GET /v1/events/:id/registrations - Requires the EVENT_REGISTRATION_READ_BY_EVENT permission.
func (h *RegistrationHandler) ListByEventHandler(c *gin.Context) {
	eventID, err := parsePathID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	registrations, err := h.registrationUseCase.ListByEvent(c.Request.Context(), eventID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationsToListResponse(registrations))
}

// ListMineHandler returns the caller's own live registrations.
// GET /v1/registrations/me
func (h *RegistrationHandler) ListMineHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	registrations, err := h.registrationUseCase.ListMine(c.Request.Context(), principal, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationsToListResponse(registrations))
}

// ListDeletedHandler returns soft-deleted registrations.
// GET /v1/registrations/deleted - Requires the EVENT_REGISTRATION_READ_DELETED permission.
func (h *RegistrationHandler) ListDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	registrations, err := h.registrationUseCase.ListDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationsToListResponse(registrations))
}

// ListWithDeletedHandler returns registrations regardless of soft-delete state.
// GET /v1/registrations/with-deleted - Requires the EVENT_REGISTRATION_READ_WITH_DELETED permission.
func (h *RegistrationHandler) ListWithDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	registrations, err := h.registrationUseCase.ListWithDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationsToListResponse(registrations))
}

// CheckInHandler marks a registration as attended.
// POST /v1/registrations/:id/checkin - Requires the EVENT_REGISTRATION_CHECKIN permission.
func (h *RegistrationHandler) CheckInHandler(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	registration, err := h.registrationUseCase.CheckIn(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationToResponse(registration))
}

// CancelHandler soft-deletes a registration. The owner needs
// EVENT_REGISTRATION_DELETE; anyone else needs EVENT_REGISTRATION_FORCE_DELETE.
// DELETE /v1/registrations/:id - Returns 204 No Content.
func (h *RegistrationHandler) CancelHandler(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	if err := h.registrationUseCase.Cancel(c.Request.Context(), principal, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreHandler brings a soft-deleted registration back.
// POST /v1/registrations/:id/restore - Requires the EVENT_REGISTRATION_RESTORE permission.
func (h *RegistrationHandler) RestoreHandler(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	registration, err := h.registrationUseCase.Restore(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationToResponse(registration))
}

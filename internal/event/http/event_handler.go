// Package http provides HTTP handlers for event operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/afga-dev/attendify-api/internal/auth/http"
	"github.com/afga-dev/attendify-api/internal/event/domain"
	"github.com/afga-dev/attendify-api/internal/event/http/dto"
	"github.com/afga-dev/attendify-api/internal/event/usecase"
	"github.com/afga-dev/attendify-api/internal/httputil"
	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// EventHandler handles event-related HTTP requests. Reads are public; writes
// carry the ownership rule enforced by the use case.
type EventHandler struct {
	eventUseCase usecase.UseCase
	logger       *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventUseCase usecase.UseCase, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
		logger:       logger,
	}
}

func parseEventID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid event id: must be a valid UUID")
	}
	return id, nil
}

// CreateHandler stores a new event owned by the caller.
// POST /v1/events - Requires the EVENT_CREATE permission.
func (h *EventHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	event, err := h.eventUseCase.Create(c.Request.Context(), principal, &domain.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Capacity:    req.Capacity,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEventToResponse(event))
}

// GetHandler returns a single live event.
// GET /v1/events/:id - Public.
func (h *EventHandler) GetHandler(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	event, err := h.eventUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}

// ListHandler returns live events with optional category and status filters.
// GET /v1/events?category=<uuid>&status=<status> - Public.
func (h *EventHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var filter domain.ListEventsFilter
	if raw := c.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid category filter: must be a valid UUID"), h.logger)
			return
		}
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid status filter: %q", raw), h.logger)
			return
		}
		filter.Status = &status
	}

	events, err := h.eventUseCase.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// ListDeletedHandler returns soft-deleted events.
// GET /v1/events/deleted - Requires the EVENT_READ_DELETED permission.
func (h *EventHandler) ListDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.ListDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// ListWithDeletedHandler returns events regardless of soft-delete state.
// GET /v1/events/with-deleted - Requires the EVENT_READ_WITH_DELETED permission.
func (h *EventHandler) ListWithDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.ListWithDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// UpdateHandler replaces the full representation of an event.
// PUT /v1/events/:id - Owner needs EVENT_UPDATE; others need EVENT_FORCE_UPDATE.
func (h *EventHandler) UpdateHandler(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	event, err := h.eventUseCase.Update(c.Request.Context(), principal, id, &domain.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      req.Status,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}

// DeleteHandler soft-deletes an event.
// DELETE /v1/events/:id - Owner needs EVENT_DELETE; others need EVENT_FORCE_DELETE.
// Returns 204 No Content.
func (h *EventHandler) DeleteHandler(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	if err := h.eventUseCase.SoftDelete(c.Request.Context(), principal, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreHandler brings a soft-deleted event back.
// POST /v1/events/:id/restore - Requires the EVENT_RESTORE permission.
func (h *EventHandler) RestoreHandler(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	event, err := h.eventUseCase.Restore(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}

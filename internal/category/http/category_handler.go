// Package http provides HTTP handlers for category operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/afga-dev/attendify-api/internal/category/domain"
	"github.com/afga-dev/attendify-api/internal/category/http/dto"
	"github.com/afga-dev/attendify-api/internal/category/usecase"
	"github.com/afga-dev/attendify-api/internal/httputil"
	customValidation "github.com/afga-dev/attendify-api/internal/validation"
)

// CategoryHandler handles category-related HTTP requests. Reads are public;
// writes are permission-gated at the route.
type CategoryHandler struct {
	categoryUseCase usecase.UseCase
	logger          *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUseCase usecase.UseCase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
		logger:          logger,
	}
}

func parseCategoryID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid category id: must be a valid UUID")
	}
	return id, nil
}

// CreateHandler stores a new category.
// POST /v1/categories - Requires the CATEGORY_CREATE permission.
func (h *CategoryHandler) CreateHandler(c *gin.Context) {
	var req dto.CategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	category, err := h.categoryUseCase.Create(c.Request.Context(), &domain.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCategoryToResponse(category))
}

// GetHandler returns a single live category.
// GET /v1/categories/:id - Public.
func (h *CategoryHandler) GetHandler(c *gin.Context) {
	id, err := parseCategoryID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	category, err := h.categoryUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCategoryToResponse(category))
}

// ListHandler returns live categories with offset/limit pagination.
// GET /v1/categories - Public.
func (h *CategoryHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	categories, err := h.categoryUseCase.List(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCategoriesToListResponse(categories))
}

// ListDeletedHandler returns soft-deleted categories.
// GET /v1/categories/deleted - Requires the CATEGORY_READ_DELETED permission.
func (h *CategoryHandler) ListDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	categories, err := h.categoryUseCase.ListDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCategoriesToListResponse(categories))
}

// ListWithDeletedHandler returns categories regardless of soft-delete state.
// GET /v1/categories/with-deleted - Requires the CATEGORY_READ_WITH_DELETED permission.
func (h *CategoryHandler) ListWithDeletedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	categories, err := h.categoryUseCase.ListWithDeleted(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCategoriesToListResponse(categories))
}

// UpdateHandler replaces the name and description of a category.
// PUT /v1/categories/:id - Requires the CATEGORY_UPDATE permission.
func (h *CategoryHandler) UpdateHandler(c *gin.Context) {
	id, err := parseCategoryID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	category, err := h.categoryUseCase.Update(c.Request.Context(), id, &domain.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCategoryToResponse(category))
}

// DeleteHandler soft-deletes a category.
// DELETE /v1/categories/:id - Requires the CATEGORY_DELETE permission.
// Returns 204 No Content.
func (h *CategoryHandler) DeleteHandler(c *gin.Context) {
	id, err := parseCategoryID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.categoryUseCase.SoftDelete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreHandler brings a soft-deleted category back.
// POST /v1/categories/:id/restore - Requires the CATEGORY_RESTORE permission.
func (h *CategoryHandler) RestoreHandler(c *gin.Context) {
	id, err := parseCategoryID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	category, err := h.categoryUseCase.Restore(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCategoryToResponse(category))
}

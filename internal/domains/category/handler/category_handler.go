package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/domains/category/service"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

type CategoryHandler struct {
	service service.Service
	opts    model.ListOptions
}

func NewCategoryHandler(svc service.Service, opts model.ListOptions) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		opts:    opts,
	}
}

// List - GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	q, err := model.NormalizeListQuery(query.FromGin(c), h.opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	categories, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Categories retrieved successfully", categories, meta)
}

// GetBySlug - GET /categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category retrieved successfully", category)
}

// GetByID - GET /admin/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleError(c, model.ErrInvalidCategoryID)
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category retrieved successfully", category)
}

// Create - POST /admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created successfully", category)
}

// Update - PATCH /admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleError(c, model.ErrInvalidCategoryID)
		return
	}

	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", category)
}

// Delete - DELETE /admin/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleError(c, model.ErrInvalidCategoryID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) handleError(c *gin.Context, err error) {
	var catErr *model.CategoryError
	ve, isValidation := validator.IsValidationError(err)

	switch {
	case isValidation:
		response.ValidationError(c, ve)
	case errors.As(err, &catErr):
		if catErr.Status >= http.StatusInternalServerError {
			logger.Error("category request failed", err)
		}
		response.ErrorWithCode(c, catErr.Status, catErr.Code, catErr.Message, nil)
	default:
		logger.Error("category request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}

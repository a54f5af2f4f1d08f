package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/domains/tag/service"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

type TagHandler struct {
	service service.Service
	opts    model.ListOptions
}

func NewTagHandler(svc service.Service, opts model.ListOptions) *TagHandler {
	return &TagHandler{service: svc, opts: opts}
}

// ========== GET /tags, GET /admin/tags ==========
func (h *TagHandler) List(c *gin.Context) {
	q, err := model.NormalizeListQuery(query.FromGin(c), h.opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	tags, meta, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Tags retrieved successfully", tags, meta)
}

// ========== GET /tags/:slug ==========
func (h *TagHandler) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.BadRequest(c, "slug is required")
		return
	}

	tag, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag retrieved successfully", tag)
}

// ========== GET /admin/tags/:id ==========
func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	tag, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag retrieved successfully", tag)
}

// ========== POST /admin/tags ==========
func (h *TagHandler) Create(c *gin.Context) {
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Tag created successfully", tag)
}

// ========== PATCH /admin/tags/:id ==========
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req model.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag updated successfully", tag)
}

// ========== DELETE /admin/tags/:id ==========
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag deleted successfully", nil)
}

func (h *TagHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		e := model.ErrInvalidTagID
		response.ErrorWithCode(c, e.Status, e.Code, e.Message, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *TagHandler) handleError(c *gin.Context, err error) {
	if ve, ok := validator.IsValidationError(err); ok {
		response.ValidationError(c, ve)
		return
	}

	var tagErr *model.TagError
	if errors.As(err, &tagErr) {
		if tagErr.Status >= http.StatusInternalServerError {
			logger.Error("tag request failed", err)
		}
		response.ErrorWithCode(c, tagErr.Status, tagErr.Code, tagErr.Message, nil)
		return
	}

	logger.Error("tag request failed", err)
	response.InternalServerError(c, "Internal server error")
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

type PostHandler struct {
	service service.Service
}

func NewPostHandler(svc service.Service) *PostHandler {
	return &PostHandler{service: svc}
}

// ========== PUBLIC ==========

// ListPublished - GET /posts
func (h *PostHandler) ListPublished(c *gin.Context) {
	posts, meta, err := h.service.ListPublished(c.Request.Context(), query.FromGin(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Posts retrieved successfully", posts, meta)
}

// GetBySlug - GET /posts/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.BadRequest(c, "slug is required")
		return
	}

	post, err := h.service.GetPublishedBySlug(c.Request.Context(), slug)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post retrieved successfully", post)
}

// ========== ADMIN ==========

// ListAll - GET /admin/posts
func (h *PostHandler) ListAll(c *gin.Context) {
	posts, meta, err := h.service.ListAll(c.Request.Context(), query.FromGin(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Posts retrieved successfully", posts, meta)
}

// GetByID - GET /admin/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post retrieved successfully", post)
}

// Create - POST /admin/posts
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}
	authorID, err := uuid.Parse(user.ID)
	if err != nil {
		h.handleError(c, model.ErrInvalidAuthor)
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.service.Create(c.Request.Context(), authorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Post created successfully", post)
}

// Update - PATCH /admin/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated successfully", post)
}

// Delete - DELETE /admin/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post deleted successfully", nil)
}

// CheckSlug - GET /admin/posts/check-slug?slug=&excludeId=
func (h *PostHandler) CheckSlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))

	var excludeID *uuid.UUID
	if raw := c.Query("excludeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.handleError(c, model.ErrInvalidPostID)
			return
		}
		excludeID = &id
	}

	available, err := h.service.IsSlugAvailable(c.Request.Context(), slug, excludeID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slug checked", gin.H{
		"slug":      slug,
		"available": available,
	})
}

func postID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		e := model.ErrInvalidPostID
		response.ErrorWithCode(c, e.Status, e.Code, e.Message, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	if ve, ok := validator.IsValidationError(err); ok {
		response.ValidationError(c, ve)
		return
	}

	var postErr *model.PostError
	if errors.As(err, &postErr) {
		if postErr.Status >= http.StatusInternalServerError {
			logger.Error("post request failed", err)
		}
		response.ErrorWithCode(c, postErr.Status, postErr.Code, postErr.Message, nil)
		return
	}

	logger.Error("post request failed", err)
	response.InternalServerError(c, "Internal server error")
}

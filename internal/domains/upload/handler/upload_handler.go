package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/upload/model"
	"blog-backend/internal/domains/upload/service"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

type UploadHandler struct {
	service service.Service
}

func NewUploadHandler(svc service.Service) *UploadHandler {
	return &UploadHandler{service: svc}
}

// Presign - POST /admin/uploads/presign
func (h *UploadHandler) Presign(c *gin.Context) {
	var req model.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Presign(c.Request.Context(), req)
	if err != nil {
		if ve, ok := validator.IsValidationError(err); ok {
			response.ValidationError(c, ve)
			return
		}
		var upErr *model.UploadError
		if errors.As(err, &upErr) {
			logger.Error("presign failed", err)
			response.ErrorWithCode(c, upErr.Status, upErr.Code, upErr.Message, nil)
			return
		}
		logger.Error("presign failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, "Upload URL issued", res)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/setting/model"
	"blog-backend/internal/domains/setting/service"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

type SettingHandler struct {
	service service.Service
}

func NewSettingHandler(svc service.Service) *SettingHandler {
	return &SettingHandler{service: svc}
}

// Get - GET /settings
func (h *SettingHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Settings retrieved successfully", settings)
}

// Update - PATCH /admin/settings
func (h *SettingHandler) Update(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Settings updated successfully", settings)
}

func (h *SettingHandler) handleError(c *gin.Context, err error) {
	if ve, ok := validator.IsValidationError(err); ok {
		response.ValidationError(c, ve)
		return
	}
	logger.Error("settings request failed", err)
	response.InternalServerError(c, "Internal server error")
}

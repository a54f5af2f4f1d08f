package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/domains/user/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

type UserHandler struct {
	service service.Service
}

func NewUserHandler(svc service.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// Me - GET /admin/me
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(identity.ID)
	if err != nil {
		response.Unauthorized(c, "Invalid session subject")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		var userErr *model.UserError
		if errors.As(err, &userErr) {
			response.ErrorWithCode(c, userErr.Status, userErr.Code, userErr.Message, nil)
			return
		}
		logger.Error("load current user failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, "Current user", u)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

// ReconcileEnqueuer schedules the background counter reconcile.
type ReconcileEnqueuer interface {
	EnqueueReconcileCounts(ctx context.Context, requestedBy string) (string, error)
}

type MaintenanceHandler struct {
	queue ReconcileEnqueuer
}

func NewMaintenanceHandler(queue ReconcileEnqueuer) *MaintenanceHandler {
	return &MaintenanceHandler{queue: queue}
}

// ReconcileCounts - POST /admin/maintenance/reconcile-counts
func (h *MaintenanceHandler) ReconcileCounts(c *gin.Context) {
	requestedBy := ""
	if user, ok := middleware.CurrentUser(c); ok {
		requestedBy = user.ID
	}

	taskID, err := h.queue.EnqueueReconcileCounts(c.Request.Context(), requestedBy)
	if err != nil {
		logger.Error("enqueue counter reconcile failed", err)
		response.ErrorWithCode(c, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "Could not schedule the reconcile job", nil)
		return
	}

	logger.Info("counter reconcile enqueued", map[string]interface{}{
		"task_id":      taskID,
		"requested_by": requestedBy,
	})
	response.Success(c, http.StatusAccepted, "Reconcile scheduled", gin.H{"taskId": taskID})
}

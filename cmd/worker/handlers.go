package main

import (
	"github.com/hibiken/asynq"

	"blog-backend/internal/shared"
	"blog-backend/pkg/container"
)

// RegisterHandlers binds every task type to its job handler.
func RegisterHandlers(mux *asynq.ServeMux, c *container.Container) {
	// Posts
	mux.Handle(shared.TypeFlushPostViews, c.FlushViewsJob)

	// Maintenance
	mux.Handle(shared.TypeReconcileCounts, c.ReconcileCountsJob)
}

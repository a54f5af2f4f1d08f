package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/response"
)

// Pinger is anything whose reachability can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReport is the body of GET /health.
type HealthReport struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

type HealthHandler struct {
	version  string
	database Pinger
	optional map[string]Pinger
	timeout  time.Duration
}

// NewHealthHandler reports the database as critical; optional dependencies
// (cache, storage) only degrade the status. Nil pingers report "disconnected".
func NewHealthHandler(version string, database Pinger, optional map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		version:  version,
		database: database,
		optional: optional,
		timeout:  2 * time.Second,
	}
}

// Check - GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	report := HealthReport{
		Status:   "ok",
		Version:  h.version,
		Services: make(map[string]string, len(h.optional)+1),
	}

	dbStatus := h.probe(c.Request.Context(), h.database)
	report.Services["database"] = dbStatus
	if dbStatus != "ok" {
		report.Status = "degraded"
	}

	for name, p := range h.optional {
		status := h.probe(c.Request.Context(), p)
		report.Services[name] = status
		if status != "ok" {
			report.Status = "degraded"
		}
	}

	if dbStatus != "ok" {
		response.ErrorWithCode(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database unavailable", report)
		return
	}
	response.Success(c, http.StatusOK, "Service healthy", report)
}

func (h *HealthHandler) probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disconnected"
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

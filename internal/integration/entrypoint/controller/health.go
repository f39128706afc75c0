// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

var errNoDatabase = errors.New("database not configured")

// HealthController reports liveness and store reachability.
type HealthController struct {
	ping func(ctx context.Context) error
	now  func() time.Time
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a health controller. A nil ping reports the
// database as disconnected, which is how the degraded startup mode runs.
func NewHealthController(ping func(ctx context.Context) error, now func() time.Time) *HealthController {
	if now == nil {
		now = time.Now
	}
	return &HealthController{ping: ping, now: now}
}

// Check handles GET /health. The process answers 200 while it is up; the
// status field degrades when the database cannot be reached.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "connected",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}

	if err := h.pingDatabase(c.Request.Context()); err != nil {
		response.Status = "degraded"
		response.Database = "disconnected"
	}

	c.JSON(http.StatusOK, response)
}

func (h *HealthController) pingDatabase(ctx context.Context) error {
	if h.ping == nil {
		return errNoDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		slog.Warn("Database health check failed", "error", err)
		return err
	}
	return nil
}

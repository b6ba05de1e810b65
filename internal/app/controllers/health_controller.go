package controllers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekinura/schoolboard/internal/app/models/dto"
)

// HealthController reports process and database liveness
type HealthController struct {
	db *sql.DB
}

// NewHealthController creates a new HealthController
func NewHealthController(db *sql.DB) *HealthController {
	return &HealthController{db: db}
}

// Healthz handles liveness checks
// @Summary Health check
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (c *HealthController) Healthz(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.PingContext(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "degraded",
			Database: "unreachable",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Database: "ok",
	})
}

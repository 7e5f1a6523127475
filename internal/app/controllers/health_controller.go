package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelmess/internal/app/models/dto"
)

// Pinger is satisfied by the database handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and database reachability
type HealthController struct {
	db      Pinger
	clients func() int
}

// NewHealthController creates a new HealthController. clients reports the
// number of realtime subscribers and may be nil.
func NewHealthController(db Pinger, clients func() int) *HealthController {
	return &HealthController{db: db, clients: clients}
}

type healthResponse struct {
	Status          string `json:"status"`
	Database        string `json:"database"`
	RealtimeClients int    `json:"realtimeClients"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 503 {object} dto.APIResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := healthResponse{Status: "ok", Database: "ok"}
	if c.clients != nil {
		resp.RealtimeClients = c.clients()
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		body := dto.NewSuccessResponse(resp)
		body.Success = false
		ctx.JSON(http.StatusServiceUnavailable, body)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tlind/huemcp/pkg/api/types"
	"github.com/tlind/huemcp/pkg/control"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	controller *control.Controller
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller *control.Controller) *HealthHandler {
	return &HealthHandler{controller: controller}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and the bridge connection
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	bridgeStatus := "connected"
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.controller.Ping(c.Request.Context()); err != nil {
		bridgeStatus = "disconnected"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Bridge:    bridgeStatus,
		Lights:    len(h.controller.Lights()),
		Timestamp: time.Now(),
	})
}

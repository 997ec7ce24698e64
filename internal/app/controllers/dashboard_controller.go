package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/app/services"
)

// DashboardController serves the admin dashboard and the health check
type DashboardController struct {
	dashboardService *services.DashboardService
	ping             func(context.Context) error
}

// NewDashboardController creates a new DashboardController. ping checks the database.
func NewDashboardController(dashboardService *services.DashboardService, ping func(context.Context) error) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		ping:             ping,
	}
}

// Stats returns the dashboard counters
// @Summary Dashboard statistics
// @Description Six counters computed concurrently. A counter that failed is omitted and listed in "unavailable".
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStats
// @Router /admin/dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.dashboardService.Stats(ctx.Request.Context()))
}

// Health reports whether the service and its database are up
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *DashboardController) Health(ctx *gin.Context) {
	if err := c.ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}

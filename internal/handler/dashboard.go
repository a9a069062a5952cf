package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
)

// DashboardHandler implements the daily summary and statistics endpoints
type DashboardHandler struct {
	service *service.DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// DailySummary returns per-medication completion for one calendar day
func (h *DashboardHandler) DailySummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequest(c, "date query parameter is required", nil)
		return
	}

	summary, err := h.service.DailySummary(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		serviceError(c, "Failed to compute daily summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Stats returns per-day completion over an inclusive date range
func (h *DashboardHandler) Stats(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		badRequest(c, "start and end query parameters are required", fmt.Errorf("missing start or end"))
		return
	}

	stats, err := h.service.DateRangeStats(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to compute statistics", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

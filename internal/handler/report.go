package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/schedule"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/api"
)

// ReportHandler implements the care summary report endpoint
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// CareSummary renders a PDF care summary over an inclusive date range
func (h *ReportHandler) CareSummary(c *gin.Context) {
	var req api.CareSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	pdfBytes, err := h.service.CareSummary(
		c.Request.Context(),
		req.CareRecipientID,
		req.StartDate.Format(schedule.DateKey),
		req.EndDate.Format(schedule.DateKey),
	)
	if err != nil {
		serviceError(c, "Failed to generate care summary", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="care-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
)

// InspirationHandler serves the daily caregiver quote
type InspirationHandler struct {
	service *service.InspirationService
	logger  *zap.Logger
}

// NewInspirationHandler creates a new InspirationHandler
func NewInspirationHandler(service *service.InspirationService, logger *zap.Logger) *InspirationHandler {
	return &InspirationHandler{
		service: service,
		logger:  logger,
	}
}

// QuoteOfTheDay returns the quote for the current calendar day
func (h *InspirationHandler) QuoteOfTheDay(c *gin.Context) {
	quote := h.service.QuoteOfTheDay(c.Request.Context())
	c.JSON(http.StatusOK, quote)
}

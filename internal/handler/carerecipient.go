package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// CareRecipientHandler implements care recipient API endpoints
type CareRecipientHandler struct {
	service *service.CareRecipientService
	logger  *zap.Logger
}

// NewCareRecipientHandler creates a new CareRecipientHandler
func NewCareRecipientHandler(service *service.CareRecipientService, logger *zap.Logger) *CareRecipientHandler {
	return &CareRecipientHandler{
		service: service,
		logger:  logger,
	}
}

// List returns all care recipients
func (h *CareRecipientHandler) List(c *gin.Context) {
	recipients, err := h.service.GetCareRecipients(c.Request.Context())
	if err != nil {
		serviceError(c, "Failed to list care recipients", err)
		return
	}

	if recipients == nil {
		recipients = []model.CareRecipient{}
	}
	c.JSON(http.StatusOK, recipients)
}

// Get returns one care recipient
func (h *CareRecipientHandler) Get(c *gin.Context) {
	recipient, err := h.service.GetCareRecipient(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to get care recipient", err)
		return
	}

	c.JSON(http.StatusOK, recipient)
}

// Create creates a care recipient
func (h *CareRecipientHandler) Create(c *gin.Context) {
	var recipient model.CareRecipient
	if err := c.ShouldBindJSON(&recipient); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	if err := h.service.CreateCareRecipient(c.Request.Context(), &recipient); err != nil {
		h.logger.Error("failed to create care recipient", zap.Error(err))
		badRequest(c, "Failed to create care recipient", err)
		return
	}

	c.JSON(http.StatusCreated, recipient)
}

// Update updates a care recipient
func (h *CareRecipientHandler) Update(c *gin.Context) {
	var recipient model.CareRecipient
	if err := c.ShouldBindJSON(&recipient); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	recipient.ID = c.Param("id")

	if err := h.service.UpdateCareRecipient(c.Request.Context(), &recipient); err != nil {
		serviceError(c, "Failed to update care recipient", err)
		return
	}

	c.JSON(http.StatusOK, recipient)
}

// Delete deletes a care recipient and everything scoped to it
func (h *CareRecipientHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteCareRecipient(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete care recipient", err)
		return
	}

	c.Status(http.StatusNoContent)
}

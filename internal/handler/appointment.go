package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// AppointmentHandler implements appointment API endpoints
type AppointmentHandler struct {
	service *service.AppointmentService
	logger  *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(service *service.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		logger:  logger,
	}
}

// ListByRecipient returns appointments starting within a date range
func (h *AppointmentHandler) ListByRecipient(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	appointments, err := h.service.GetAppointments(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list appointments", err)
		return
	}

	if appointments == nil {
		appointments = []model.Appointment{}
	}
	c.JSON(http.StatusOK, appointments)
}

// Create creates an appointment for a care recipient
func (h *AppointmentHandler) Create(c *gin.Context) {
	var appointment model.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	appointment.CareRecipientID = c.Param("id")

	if err := h.service.CreateAppointment(c.Request.Context(), &appointment); err != nil {
		h.logger.Error("failed to create appointment", zap.Error(err))
		badRequest(c, "Failed to create appointment", err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// Update updates an appointment
func (h *AppointmentHandler) Update(c *gin.Context) {
	var appointment model.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	appointment.ID = c.Param("id")

	if err := h.service.UpdateAppointment(c.Request.Context(), &appointment); err != nil {
		serviceError(c, "Failed to update appointment", err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// Delete deletes an appointment
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete appointment", err)
		return
	}

	c.Status(http.StatusNoContent)
}

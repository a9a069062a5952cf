package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/schedule"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/api"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// MedicationHandler implements medication, schedule and dose log API
// endpoints.
type MedicationHandler struct {
	service *service.MedicationService
	logger  *zap.Logger
}

// NewMedicationHandler creates a new MedicationHandler
func NewMedicationHandler(service *service.MedicationService, logger *zap.Logger) *MedicationHandler {
	return &MedicationHandler{
		service: service,
		logger:  logger,
	}
}

// ListByRecipient returns all medications for a care recipient
func (h *MedicationHandler) ListByRecipient(c *gin.Context) {
	medications, err := h.service.GetMedications(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to list medications", err)
		return
	}

	if medications == nil {
		medications = []model.Medication{}
	}
	c.JSON(http.StatusOK, medications)
}

// Get returns one medication
func (h *MedicationHandler) Get(c *gin.Context) {
	medication, err := h.service.GetMedication(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to get medication", err)
		return
	}

	c.JSON(http.StatusOK, medication)
}

// Create creates a medication
func (h *MedicationHandler) Create(c *gin.Context) {
	var medication model.Medication
	if err := c.ShouldBindJSON(&medication); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	if err := h.service.CreateMedication(c.Request.Context(), &medication); err != nil {
		h.logger.Error("failed to create medication", zap.Error(err))
		badRequest(c, "Failed to create medication", err)
		return
	}

	c.JSON(http.StatusCreated, medication)
}

// Update updates a medication
func (h *MedicationHandler) Update(c *gin.Context) {
	var medication model.Medication
	if err := c.ShouldBindJSON(&medication); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	medication.ID = c.Param("id")

	if err := h.service.UpdateMedication(c.Request.Context(), &medication); err != nil {
		serviceError(c, "Failed to update medication", err)
		return
	}

	c.JSON(http.StatusOK, medication)
}

// Delete deletes a medication with its schedules and logs
func (h *MedicationHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteMedication(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete medication", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSchedules returns all schedules for a medication
func (h *MedicationHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.service.GetSchedules(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to list medication schedules", err)
		return
	}

	if schedules == nil {
		schedules = []model.MedicationSchedule{}
	}
	c.JSON(http.StatusOK, schedules)
}

// CreateSchedule creates a medication schedule
func (h *MedicationHandler) CreateSchedule(c *gin.Context) {
	var sched model.MedicationSchedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	if err := h.service.CreateSchedule(c.Request.Context(), &sched); err != nil {
		h.logger.Error("failed to create medication schedule", zap.Error(err))
		badRequest(c, "Failed to create medication schedule", err)
		return
	}

	c.JSON(http.StatusCreated, sched)
}

// UpdateSchedule updates a medication schedule
func (h *MedicationHandler) UpdateSchedule(c *gin.Context) {
	var sched model.MedicationSchedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	sched.ID = c.Param("id")

	if err := h.service.UpdateSchedule(c.Request.Context(), &sched); err != nil {
		serviceError(c, "Failed to update medication schedule", err)
		return
	}

	c.JSON(http.StatusOK, sched)
}

// DeleteSchedule deletes a medication schedule
func (h *MedicationHandler) DeleteSchedule(c *gin.Context) {
	if err := h.service.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete medication schedule", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkDose records a dose as taken
func (h *MedicationHandler) MarkDose(c *gin.Context) {
	var req api.MarkDoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	takenAt := time.Time{}
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}

	log, err := h.service.MarkDoseTaken(c.Request.Context(), req.MedicationID, req.ScheduleID, takenAt, req.Notes)
	if err != nil {
		serviceError(c, "Failed to mark dose taken", err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// UnmarkDose removes the logs fulfilling a schedule on a calendar day
func (h *MedicationHandler) UnmarkDose(c *gin.Context) {
	var req api.UnmarkDoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	removed, err := h.service.UnmarkDose(c.Request.Context(), req.MedicationID, req.ScheduleID, req.Date.Format(schedule.DateKey))
	if err != nil {
		serviceError(c, "Failed to unmark dose", err)
		return
	}

	c.JSON(http.StatusOK, api.UnmarkDoseResponse{Removed: removed})
}

// DeleteLog removes a single dose log
func (h *MedicationHandler) DeleteLog(c *gin.Context) {
	if err := h.service.DeleteLog(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete medication log", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListLogs returns a medication's dose logs within a date range
func (h *MedicationHandler) ListLogs(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	logs, err := h.service.GetLogs(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list medication logs", err)
		return
	}

	if logs == nil {
		logs = []model.MedicationLog{}
	}
	c.JSON(http.StatusOK, logs)
}

// UpcomingDoses returns what is still due today plus tomorrow
func (h *MedicationHandler) UpcomingDoses(c *gin.Context) {
	upcoming, err := h.service.UpcomingDoses(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to compute upcoming doses", err)
		return
	}

	if upcoming.Scheduled == nil {
		upcoming.Scheduled = []service.UpcomingDose{}
	}
	if upcoming.AsNeeded == nil {
		upcoming.AsNeeded = []service.UpcomingDose{}
	}
	c.JSON(http.StatusOK, upcoming)
}

// ReorderAlerts returns medications flagged by the depletion forecast
func (h *MedicationHandler) ReorderAlerts(c *gin.Context) {
	alerts, err := h.service.ReorderAlerts(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to compute reorder alerts", err)
		return
	}

	if alerts == nil {
		alerts = []model.Medication{}
	}
	c.JSON(http.StatusOK, alerts)
}

// Refill resets stock to the original fill and consumes one refill
func (h *MedicationHandler) Refill(c *gin.Context) {
	medication, err := h.service.RecordRefill(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to record refill", err)
		return
	}

	c.JSON(http.StatusOK, medication)
}

// UpdateInventory sets inventory counters directly
func (h *MedicationHandler) UpdateInventory(c *gin.Context) {
	var req api.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	medication, err := h.service.UpdateInventory(c.Request.Context(), c.Param("id"), req.CurrentQuantity, req.RefillsRemaining)
	if err != nil {
		serviceError(c, "Failed to update inventory", err)
		return
	}

	c.JSON(http.StatusOK, medication)
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// NoteHandler implements care note API endpoints
type NoteHandler struct {
	service *service.NoteService
	logger  *zap.Logger
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(service *service.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		logger:  logger,
	}
}

// ListByRecipient returns notes created within a date range
func (h *NoteHandler) ListByRecipient(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	notes, err := h.service.GetNotes(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list notes", err)
		return
	}

	if notes == nil {
		notes = []model.Note{}
	}
	c.JSON(http.StatusOK, notes)
}

// Get returns one note
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.service.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, "Failed to get note", err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// Create creates a note for a care recipient
func (h *NoteHandler) Create(c *gin.Context) {
	var note model.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	note.CareRecipientID = c.Param("id")

	if err := h.service.CreateNote(c.Request.Context(), &note); err != nil {
		h.logger.Error("failed to create note", zap.Error(err))
		badRequest(c, "Failed to create note", err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// Update updates a note
func (h *NoteHandler) Update(c *gin.Context) {
	var note model.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	note.ID = c.Param("id")

	if err := h.service.UpdateNote(c.Request.Context(), &note); err != nil {
		serviceError(c, "Failed to update note", err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// Delete deletes a note
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete note", err)
		return
	}

	c.Status(http.StatusNoContent)
}

package api

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// MarkDoseRequest records a dose as taken
type MarkDoseRequest struct {
	MedicationID string     `json:"medication_id" binding:"required"`
	ScheduleID   *string    `json:"schedule_id,omitempty"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// UnmarkDoseRequest removes the logs fulfilling a schedule on a day
type UnmarkDoseRequest struct {
	MedicationID string     `json:"medication_id" binding:"required"`
	ScheduleID   string     `json:"schedule_id" binding:"required"`
	Date         types.Date `json:"date" binding:"required"`
}

// UnmarkDoseResponse reports how many logs were removed
type UnmarkDoseResponse struct {
	Removed int64 `json:"removed"`
}

// InventoryRequest sets a medication's inventory counters
type InventoryRequest struct {
	CurrentQuantity  *int `json:"current_quantity"`
	RefillsRemaining int  `json:"refills_remaining"`
}

// CareSummaryRequest selects the recipient and date range of a care
// summary report.
type CareSummaryRequest struct {
	CareRecipientID string     `json:"care_recipient_id" binding:"required"`
	StartDate       types.Date `json:"start_date" binding:"required"`
	EndDate         types.Date `json:"end_date" binding:"required"`
}

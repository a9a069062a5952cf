package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/schedule"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/api"
)

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// badRequest writes a 400 validation error response
func badRequest(c *gin.Context, message string, err error) {
	resp := api.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
	if err != nil {
		resp.Details = stringPtr(err.Error())
	}
	c.JSON(http.StatusBadRequest, resp)
}

// serviceError maps a service error to 404 for missing resources and
// 500 otherwise.
func serviceError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	if strings.Contains(err.Error(), "not found") {
		status = http.StatusNotFound
		code = "NOT_FOUND"
	}
	c.JSON(status, api.ErrorResponse{
		Code:    code,
		Message: message,
		Details: stringPtr(err.Error()),
	})
}

// dateRangeFromQuery reads optional start/end date query parameters and
// returns the half-open [start, end) time range they describe. end is
// inclusive as a calendar day, so one day is added. Defaults cover the
// last 30 days.
func dateRangeFromQuery(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	end := now.AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -30)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(schedule.DateKey, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", raw)
		}
		start = parsed
	}

	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(schedule.DateKey, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", raw)
		}
		end = parsed.AddDate(0, 0, 1)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date is before start date")
	}

	return start, end, nil
}

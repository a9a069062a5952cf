package schedule

import (
	"math"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// CompletionState summarizes required versus taken doses for one
// medication on one date.
type CompletionState struct {
	RequiredCount int  `json:"required_count"`
	TakenCount    int  `json:"taken_count"`
	IsComplete    bool `json:"is_complete"`
}

// ResolveCompletion computes the completion state of a medication for a
// date, given its schedules and the intake logs recorded on that date.
//
// Completeness is all-or-nothing: every required (active, non-PRN)
// schedule must have a log referencing it. A medication with no
// schedules at all falls back to one implicit daily dose, satisfied by
// any log for the date including manual logs with no schedule link.
// A medication whose schedules are all as-needed requires nothing and
// counts as complete.
func ResolveCompletion(schedules []model.MedicationSchedule, logsForDate []model.MedicationLog) CompletionState {
	if len(schedules) == 0 {
		state := CompletionState{RequiredCount: 1}
		if len(logsForDate) > 0 {
			state.TakenCount = 1
			state.IsComplete = true
		}
		return state
	}

	var required []model.MedicationSchedule
	for _, s := range schedules {
		if s.Active && !s.AsNeeded {
			required = append(required, s)
		}
	}

	if len(required) == 0 {
		return CompletionState{IsComplete: true}
	}

	taken := make(map[string]bool)
	for _, log := range logsForDate {
		if log.ScheduleID != nil {
			taken[*log.ScheduleID] = true
		}
	}

	state := CompletionState{RequiredCount: len(required), IsComplete: true}
	for _, s := range required {
		if taken[s.ID] {
			state.TakenCount++
		} else {
			state.IsComplete = false
		}
	}
	return state
}

// DailySummary is the per-day roll-up across all of a care recipient's
// medications.
type DailySummary struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Progress  int `json:"progress"` // 0-100
}

// Summarize counts complete medications across a day. states holds one
// completion state per medication.
func Summarize(states []CompletionState) DailySummary {
	summary := DailySummary{Total: len(states)}
	for _, s := range states {
		if s.IsComplete {
			summary.Completed++
		}
	}
	summary.Progress = Progress(summary.Completed, summary.Total)
	return summary
}

// Progress returns completed/total as a rounded percentage, 0 when
// total is zero.
func Progress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

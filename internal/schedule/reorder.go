package schedule

import (
	"math"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// EstimatedDailyUsage computes the average daily consumption implied by
// a medication's required schedules: sum of quantity amount times the
// number of active weekdays, divided by seven.
//
// This is deliberately a linear approximation. Tapering overrides and
// the true per-week day count of specific-date schedules are ignored
// (a specific-date schedule with no weekday set counts as daily); the
// approximation is part of the observable forecast contract.
func EstimatedDailyUsage(schedules []model.MedicationSchedule) float64 {
	var usage float64
	for _, s := range schedules {
		if !s.Active || s.AsNeeded {
			continue
		}

		activeDays := len(s.DaysOfWeek)
		if activeDays == 0 || activeDays > 7 {
			activeDays = 7
		}

		usage += ParseQuantity(s.Quantity).Amount * float64(activeDays) / 7
	}
	return usage
}

// NeedsReorder reports whether a medication should be flagged for
// refill: immediately when stock has reached the reorder threshold,
// otherwise when the linear depletion forecast crosses the threshold
// within the medication's reorder lead time.
func NeedsReorder(med model.Medication, schedules []model.MedicationSchedule) bool {
	if med.CurrentQuantity == nil {
		return false
	}
	current := *med.CurrentQuantity

	if current <= med.ReorderThreshold {
		return true
	}

	usage := EstimatedDailyUsage(schedules)
	if usage == 0 {
		return false
	}

	daysUntilThreshold := int(math.Floor(float64(current-med.ReorderThreshold) / usage))
	return daysUntilThreshold <= med.DaysToReorder
}

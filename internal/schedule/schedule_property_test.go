package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: weekly expansion only ever lands on the configured weekdays,
// and a full week contains exactly one instance per configured weekday.
func TestProperty_WeeklyExpansionRespectsWeekdays(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("expansion lands only on configured weekdays", prop.ForAll(
		func(weekdayMask int, weekOffset int) bool {
			var days []int
			for d := 0; d < 7; d++ {
				if weekdayMask&(1<<d) != 0 {
					days = append(days, d)
				}
			}
			if len(days) == 0 {
				return true
			}

			s := model.MedicationSchedule{
				ID:           "s1",
				MedicationID: "m1",
				Time:         "09:00",
				DaysOfWeek:   days,
				Quantity:     "1 tablet",
				Active:       true,
			}

			// An arbitrary Sunday-to-Saturday week.
			start := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*weekOffset)
			w := Window{Start: start, End: start.AddDate(0, 0, 6)}

			instances := Expand(s, w, time.Time{})
			if len(instances) != len(days) {
				t.Logf("expected %d instances, got %d", len(days), len(instances))
				return false
			}

			allowed := make(map[time.Weekday]bool)
			for _, d := range days {
				allowed[time.Weekday(d)] = true
			}
			for _, inst := range instances {
				parsed, err := time.Parse(DateKey, inst.Date)
				if err != nil || !allowed[parsed.Weekday()] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 127),
		gen.IntRange(-52, 52),
	))

	properties.TestingRun(t)
}

// Property: completion is all-or-nothing. Logging any strict subset of
// the required schedules leaves the medication incomplete; logging all
// of them completes it.
func TestProperty_CompletionAllOrNothing(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("complete iff every required schedule is logged", prop.ForAll(
		func(scheduleCount int, takenMask int) bool {
			var schedules []model.MedicationSchedule
			var logs []model.MedicationLog
			taken := 0

			for i := 0; i < scheduleCount; i++ {
				id := fmt.Sprintf("s%d", i)
				schedules = append(schedules, model.MedicationSchedule{
					ID:           id,
					MedicationID: "m1",
					Time:         "08:00",
					DaysOfWeek:   []int{0, 1, 2, 3, 4, 5, 6},
					Quantity:     "1 tablet",
					Active:       true,
				})
				if takenMask&(1<<i) != 0 {
					sid := id
					logs = append(logs, model.MedicationLog{
						ID:           "log-" + id,
						MedicationID: "m1",
						ScheduleID:   &sid,
						TakenAt:      time.Now(),
					})
					taken++
				}
			}

			state := ResolveCompletion(schedules, logs)
			return state.RequiredCount == scheduleCount &&
				state.TakenCount == taken &&
				state.IsComplete == (taken == scheduleCount)
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, 255),
	))

	properties.TestingRun(t)
}

// Property: marking then unmarking a dose restores the exact pre-mark
// completion state.
func TestProperty_MarkUnmarkToggleIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("unmark restores pre-mark state", prop.ForAll(
		func(scheduleCount int, preMask int, target int) bool {
			target = target % scheduleCount

			var schedules []model.MedicationSchedule
			var preLogs []model.MedicationLog
			for i := 0; i < scheduleCount; i++ {
				id := fmt.Sprintf("s%d", i)
				schedules = append(schedules, model.MedicationSchedule{
					ID:           id,
					MedicationID: "m1",
					Time:         "08:00",
					DaysOfWeek:   []int{0, 1, 2, 3, 4, 5, 6},
					Quantity:     "1 tablet",
					Active:       true,
				})
				if i != target && preMask&(1<<i) != 0 {
					sid := id
					preLogs = append(preLogs, model.MedicationLog{ID: "log-" + id, MedicationID: "m1", ScheduleID: &sid})
				}
			}

			before := ResolveCompletion(schedules, preLogs)

			sid := fmt.Sprintf("s%d", target)
			marked := append(append([]model.MedicationLog{}, preLogs...), model.MedicationLog{
				ID: "log-target", MedicationID: "m1", ScheduleID: &sid,
			})
			during := ResolveCompletion(schedules, marked)
			after := ResolveCompletion(schedules, preLogs)

			return before == after && during.TakenCount == before.TakenCount+1
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, 255),
		gen.IntRange(0, 7),
	))

	properties.TestingRun(t)
}

// Property: progress is always within 0..100 and equals 100 exactly
// when everything required is complete.
func TestProperty_ProgressBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("progress stays within bounds", prop.ForAll(
		func(completed, total int) bool {
			if completed > total {
				completed = total
			}
			p := Progress(completed, total)
			if p < 0 || p > 100 {
				return false
			}
			if total > 0 && completed == total && p != 100 {
				return false
			}
			if completed == 0 && p != 0 {
				return false
			}
			return true
		},
		gen.IntRange(0, 50),
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}

// Property: stock at or below the reorder threshold always flags the
// medication, whatever the schedules say.
func TestProperty_ReorderThresholdAlwaysTriggers(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("at-threshold stock always needs reorder", prop.ForAll(
		func(threshold, deficit, scheduleDays int) bool {
			current := threshold - deficit
			med := model.Medication{
				CurrentQuantity:  &current,
				ReorderThreshold: threshold,
				DaysToReorder:    7,
			}

			var schedules []model.MedicationSchedule
			if scheduleDays > 0 {
				days := make([]int, 0, scheduleDays)
				for d := 0; d < scheduleDays; d++ {
					days = append(days, d)
				}
				schedules = append(schedules, model.MedicationSchedule{
					ID: "s1", MedicationID: "m1", Time: "08:00",
					DaysOfWeek: days, Quantity: "1 tablet", Active: true,
				})
			}

			return NeedsReorder(med, schedules)
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 20),
		gen.IntRange(0, 7),
	))

	properties.TestingRun(t)
}

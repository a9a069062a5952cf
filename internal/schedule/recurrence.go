package schedule

import (
	"time"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// DateKey is the calendar-day form used throughout the schedule core.
const DateKey = "2006-01-02"

// RecurrenceKind identifies which recurrence mode a schedule uses.
type RecurrenceKind int

const (
	// RecurrenceNever marks a schedule with no effective day set and
	// asNeeded=false. This is a data-entry error; the expander treats it
	// as "never active" rather than failing.
	RecurrenceNever RecurrenceKind = iota
	// RecurrenceAsNeeded marks a PRN schedule with no fixed recurrence.
	RecurrenceAsNeeded
	// RecurrenceSpecificDates recurs on an explicit list of calendar days.
	RecurrenceSpecificDates
	// RecurrenceWeekly recurs on a set of weekdays.
	RecurrenceWeekly
)

// Recurrence is the well-formed variant a schedule's raw recurrence
// fields parse into. Resolving the variant once up front keeps
// nil-checks out of the expansion logic.
type Recurrence struct {
	Kind     RecurrenceKind
	weekdays map[time.Weekday]bool
	dates    map[string]bool
}

// RecurrenceOf classifies a schedule's recurrence fields. SpecificDays
// overrides weekly recurrence when non-empty.
func RecurrenceOf(s model.MedicationSchedule) Recurrence {
	if s.AsNeeded {
		return Recurrence{Kind: RecurrenceAsNeeded}
	}

	if len(s.SpecificDays) > 0 {
		dates := make(map[string]bool, len(s.SpecificDays))
		for _, d := range s.SpecificDays {
			dates[d] = true
		}
		return Recurrence{Kind: RecurrenceSpecificDates, dates: dates}
	}

	if len(s.DaysOfWeek) > 0 {
		weekdays := make(map[time.Weekday]bool, len(s.DaysOfWeek))
		for _, d := range s.DaysOfWeek {
			if d >= 0 && d <= 6 {
				weekdays[time.Weekday(d)] = true
			}
		}
		if len(weekdays) > 0 {
			return Recurrence{Kind: RecurrenceWeekly, weekdays: weekdays}
		}
	}

	return Recurrence{Kind: RecurrenceNever}
}

// ActiveOn reports whether the recurrence makes the schedule due on day.
// As-needed schedules are never "due"; they are surfaced separately as
// always-available optional actions.
func (r Recurrence) ActiveOn(day time.Time) bool {
	switch r.Kind {
	case RecurrenceSpecificDates:
		return r.dates[day.Format(DateKey)]
	case RecurrenceWeekly:
		return r.weekdays[day.Weekday()]
	default:
		return false
	}
}

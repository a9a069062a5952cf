package schedule

import (
	"time"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// DoseInstance is one concrete occurrence of a medication dose due on a
// specific date, produced by expanding a recurrence rule.
type DoseInstance struct {
	MedicationID string `json:"medication_id"`
	ScheduleID   string `json:"schedule_id"`
	Date         string `json:"date"` // "2006-01-02"
	Time         string `json:"time"` // "HH:MM"
	Quantity     string `json:"quantity"`
	WithFood     bool   `json:"with_food"`
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Day returns a single-day window.
func Day(d time.Time) Window {
	return Window{Start: d, End: d}
}

// Expand produces the dose instances a schedule contributes within the
// window. Inactive and as-needed schedules contribute nothing, as do
// schedules whose recurrence data is empty.
//
// now drives the partially-elapsed-day tie-break: on the day equal to
// now's calendar day, an instance is emitted only when its due time is
// strictly later than now's time-of-day. Future days include all active
// instances; past days too, so historical date views see the full-day
// schedule.
func Expand(s model.MedicationSchedule, w Window, now time.Time) []DoseInstance {
	if !s.Active {
		return nil
	}

	rec := RecurrenceOf(s)
	if rec.Kind == RecurrenceAsNeeded || rec.Kind == RecurrenceNever {
		return nil
	}

	today := now.Format(DateKey)
	nowMinutes := minutesOfDay(now.Format("15:04"))

	var instances []DoseInstance
	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		if !rec.ActiveOn(day) {
			continue
		}

		key := day.Format(DateKey)
		if key == today && minutesOfDay(s.Time) <= nowMinutes {
			continue
		}

		instances = append(instances, DoseInstance{
			MedicationID: s.MedicationID,
			ScheduleID:   s.ID,
			Date:         key,
			Time:         s.Time,
			Quantity:     EffectiveQuantity(s, day),
			WithFood:     s.WithFood,
		})
	}

	return instances
}

// EffectiveQuantity resolves the dose quantity for a day, honoring
// tapering overrides. The first tapering step whose inclusive
// [start, end] interval contains the day wins; inverted intervals never
// match. Falls back to the schedule's base quantity.
func EffectiveQuantity(s model.MedicationSchedule, day time.Time) string {
	if !s.IsTapering || len(s.TaperingSchedule) == 0 {
		return s.Quantity
	}

	key := day.Format(DateKey)
	for _, step := range s.TaperingSchedule {
		if step.StartDate > step.EndDate {
			continue
		}
		if key >= step.StartDate && key <= step.EndDate {
			return step.Quantity
		}
	}
	return s.Quantity
}

// minutesOfDay converts an "HH:MM" string to minutes since midnight.
// Malformed times sort first so the dose is treated as already elapsed
// for today rather than lingering in the upcoming list all day.
func minutesOfDay(hhmm string) int {
	if len(hhmm) < 5 || hhmm[2] != ':' {
		return -1
	}
	h := digits(hhmm[0:2])
	m := digits(hhmm[3:5])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

func digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

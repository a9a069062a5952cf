package schedule

import (
	"testing"
	"time"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdaySchedule() model.MedicationSchedule {
	return model.MedicationSchedule{
		ID:           "sched-1",
		MedicationID: "med-1",
		Time:         "08:00",
		DaysOfWeek:   []int{1, 2, 3, 4, 5},
		Quantity:     "1 tablet",
		Active:       true,
	}
}

func TestExpand_WeekdaysOverFullWeek(t *testing.T) {
	s := weekdaySchedule()

	// Monday 2024-06-03 through Sunday 2024-06-09.
	w := Window{Start: day(2024, time.June, 3), End: day(2024, time.June, 9)}
	instances := Expand(s, w, time.Time{})

	require.Len(t, instances, 5)
	for _, inst := range instances {
		parsed, err := time.Parse(DateKey, inst.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, parsed.Weekday())
		assert.NotEqual(t, time.Sunday, parsed.Weekday())
		assert.Equal(t, "08:00", inst.Time)
		assert.Equal(t, "1 tablet", inst.Quantity)
	}
}

func TestExpand_SpecificDaysOverrideWeekly(t *testing.T) {
	s := weekdaySchedule()
	s.DaysOfWeek = []int{0, 1, 2, 3, 4, 5, 6}
	s.SpecificDays = []string{"2024-06-01", "2024-06-03"}

	// 2024-06-02 is not in the specific list, so nothing is due even
	// though the weekday set says daily.
	instances := Expand(s, Day(day(2024, time.June, 2)), time.Time{})
	assert.Empty(t, instances)

	instances = Expand(s, Day(day(2024, time.June, 3)), time.Time{})
	assert.Len(t, instances, 1)
}

func TestExpand_TaperingOverridesQuantity(t *testing.T) {
	s := weekdaySchedule()
	s.DaysOfWeek = []int{0, 1, 2, 3, 4, 5, 6}
	s.Quantity = "2 tablets"
	s.IsTapering = true
	s.TaperingSchedule = []model.TaperingStep{
		{StartDate: "2024-06-01", EndDate: "2024-06-07", Quantity: "1 tablet"},
	}

	inside := Expand(s, Day(day(2024, time.June, 4)), time.Time{})
	require.Len(t, inside, 1)
	assert.Equal(t, "1 tablet", inside[0].Quantity)

	outside := Expand(s, Day(day(2024, time.June, 10)), time.Time{})
	require.Len(t, outside, 1)
	assert.Equal(t, "2 tablets", outside[0].Quantity)
}

func TestExpand_TaperingEdgeBehavior(t *testing.T) {
	s := weekdaySchedule()
	s.DaysOfWeek = []int{0, 1, 2, 3, 4, 5, 6}
	s.Quantity = "2 tablets"
	s.IsTapering = true
	s.TaperingSchedule = []model.TaperingStep{
		// Inverted window never matches.
		{StartDate: "2024-06-07", EndDate: "2024-06-01", Quantity: "3 tablets"},
		// Overlapping entries: first match in list order wins.
		{StartDate: "2024-06-01", EndDate: "2024-06-10", Quantity: "1 tablet"},
		{StartDate: "2024-06-05", EndDate: "2024-06-10", Quantity: "1/2 tablet"},
	}

	assert.Equal(t, "1 tablet", EffectiveQuantity(s, day(2024, time.June, 6)))

	// Interval bounds are inclusive.
	assert.Equal(t, "1 tablet", EffectiveQuantity(s, day(2024, time.June, 1)))
	assert.Equal(t, "1 tablet", EffectiveQuantity(s, day(2024, time.June, 10)))
	assert.Equal(t, "2 tablets", EffectiveQuantity(s, day(2024, time.June, 11)))
}

func TestExpand_TodayTieBreak(t *testing.T) {
	s := weekdaySchedule()
	s.DaysOfWeek = []int{0, 1, 2, 3, 4, 5, 6}

	now := time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC)
	w := Window{Start: day(2024, time.June, 3), End: day(2024, time.June, 4)}

	// 08:00 has already elapsed today but is still due tomorrow.
	instances := Expand(s, w, now)
	require.Len(t, instances, 1)
	assert.Equal(t, "2024-06-04", instances[0].Date)

	// A dose due exactly now is not "still upcoming".
	s.Time = "09:30"
	instances = Expand(s, w, now)
	require.Len(t, instances, 1)
	assert.Equal(t, "2024-06-04", instances[0].Date)

	s.Time = "09:31"
	instances = Expand(s, w, now)
	require.Len(t, instances, 2)
}

func TestExpand_InactiveAndDegenerateSchedules(t *testing.T) {
	w := Window{Start: day(2024, time.June, 1), End: day(2024, time.June, 30)}

	inactive := weekdaySchedule()
	inactive.Active = false
	assert.Empty(t, Expand(inactive, w, time.Time{}))

	asNeeded := weekdaySchedule()
	asNeeded.AsNeeded = true
	assert.Empty(t, Expand(asNeeded, w, time.Time{}))

	// Empty day data with asNeeded=false is a data-entry error and
	// expands to nothing instead of failing.
	never := weekdaySchedule()
	never.DaysOfWeek = nil
	never.SpecificDays = nil
	assert.Empty(t, Expand(never, w, time.Time{}))
}

func TestRecurrenceOf_Classification(t *testing.T) {
	tests := []struct {
		name     string
		schedule model.MedicationSchedule
		kind     RecurrenceKind
	}{
		{"as needed", model.MedicationSchedule{AsNeeded: true}, RecurrenceAsNeeded},
		{"as needed wins over days", model.MedicationSchedule{AsNeeded: true, DaysOfWeek: []int{1}}, RecurrenceAsNeeded},
		{"specific days", model.MedicationSchedule{SpecificDays: []string{"2024-06-01"}}, RecurrenceSpecificDates},
		{"specific overrides weekly", model.MedicationSchedule{SpecificDays: []string{"2024-06-01"}, DaysOfWeek: []int{1}}, RecurrenceSpecificDates},
		{"weekly", model.MedicationSchedule{DaysOfWeek: []int{0, 6}}, RecurrenceWeekly},
		{"out of range weekdays only", model.MedicationSchedule{DaysOfWeek: []int{7, -1}}, RecurrenceNever},
		{"empty", model.MedicationSchedule{}, RecurrenceNever},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, RecurrenceOf(tt.schedule).Kind)
		})
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/repository"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// MockSnapshotStore is a mock implementation of SnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) FetchSnapshot(ctx context.Context, recipientID string, start, end time.Time) (*repository.DaySnapshot, error) {
	args := m.Called(ctx, recipientID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DaySnapshot), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestDailySummary_AllOrNothingCompleteness(t *testing.T) {
	// Arrange
	mockStore := new(MockSnapshotStore)
	service := NewDashboardService(mockStore, zap.NewNop())

	ctx := context.Background()
	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	daily := []int{0, 1, 2, 3, 4, 5, 6}
	snapshot := &repository.DaySnapshot{
		Medications: []model.Medication{
			{ID: "med-1", Name: "Lisinopril"},
			{ID: "med-2", Name: "Metformin"},
		},
		Schedules: map[string][]model.MedicationSchedule{
			"med-1": {
				{ID: "sched-1a", MedicationID: "med-1", Time: "08:00", DaysOfWeek: daily, Active: true},
				{ID: "sched-1b", MedicationID: "med-1", Time: "20:00", DaysOfWeek: daily, Active: true},
			},
			"med-2": {
				{ID: "sched-2a", MedicationID: "med-2", Time: "09:00", DaysOfWeek: daily, Active: true},
			},
		},
		Logs: map[string][]model.MedicationLog{
			// med-1 took only the morning dose: incomplete.
			"med-1": {{ID: "log-1", MedicationID: "med-1", ScheduleID: strPtr("sched-1a"), TakenAt: day.Add(8 * time.Hour)}},
			// med-2 took its only dose: complete.
			"med-2": {{ID: "log-2", MedicationID: "med-2", ScheduleID: strPtr("sched-2a"), TakenAt: day.Add(9 * time.Hour)}},
		},
	}

	mockStore.On("FetchSnapshot", ctx, "recipient-1", day, day.AddDate(0, 0, 1)).Return(snapshot, nil)

	// Act
	summary, err := service.DailySummary(ctx, "recipient-1", "2025-06-11")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 50, summary.Progress)
	assert.Len(t, summary.Medications, 2)
	assert.False(t, summary.Medications[0].IsComplete)
	assert.Equal(t, 1, summary.Medications[0].TakenCount)
	assert.Equal(t, 2, summary.Medications[0].RequiredCount)
	assert.True(t, summary.Medications[1].IsComplete)

	// Logs flattened and ordered by time taken.
	assert.Len(t, summary.Logs, 2)
	assert.Equal(t, "log-1", summary.Logs[0].ID)
	assert.Equal(t, "log-2", summary.Logs[1].ID)

	mockStore.AssertExpectations(t)
}

func TestDailySummary_NoMedications(t *testing.T) {
	mockStore := new(MockSnapshotStore)
	service := NewDashboardService(mockStore, zap.NewNop())

	ctx := context.Background()
	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	mockStore.On("FetchSnapshot", ctx, "recipient-1", day, day.AddDate(0, 0, 1)).Return(&repository.DaySnapshot{
		Schedules: map[string][]model.MedicationSchedule{},
		Logs:      map[string][]model.MedicationLog{},
	}, nil)

	summary, err := service.DailySummary(ctx, "recipient-1", "2025-06-11")

	assert.NoError(t, err)
	assert.Zero(t, summary.Completed)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Progress)
	assert.Empty(t, summary.Medications)
	assert.Empty(t, summary.Logs)
}

func TestDailySummary_InvalidDate(t *testing.T) {
	service := NewDashboardService(new(MockSnapshotStore), zap.NewNop())

	_, err := service.DailySummary(context.Background(), "recipient-1", "06/11/2025")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestDateRangeStats_BucketsLogsByDay(t *testing.T) {
	mockStore := new(MockSnapshotStore)
	service := NewDashboardService(mockStore, zap.NewNop())

	ctx := context.Background()
	first := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	last := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	daily := []int{0, 1, 2, 3, 4, 5, 6}
	snapshot := &repository.DaySnapshot{
		Medications: []model.Medication{{ID: "med-1", Name: "Lisinopril"}},
		Schedules: map[string][]model.MedicationSchedule{
			"med-1": {{ID: "sched-1", MedicationID: "med-1", Time: "08:00", DaysOfWeek: daily, Active: true}},
		},
		Logs: map[string][]model.MedicationLog{
			"med-1": {
				{ID: "log-1", MedicationID: "med-1", ScheduleID: strPtr("sched-1"), TakenAt: first.Add(8 * time.Hour)},
				{ID: "log-2", MedicationID: "med-1", ScheduleID: strPtr("sched-1"), TakenAt: last.Add(8 * time.Hour)},
			},
		},
	}

	mockStore.On("FetchSnapshot", ctx, "recipient-1", first, last.AddDate(0, 0, 1)).Return(snapshot, nil)

	stats, err := service.DateRangeStats(ctx, "recipient-1", "2025-06-10", "2025-06-12")

	assert.NoError(t, err)
	assert.Len(t, stats, 3)

	assert.Equal(t, "2025-06-10", stats[0].Date)
	assert.Equal(t, 100, stats[0].Progress)
	assert.Equal(t, "2025-06-11", stats[1].Date)
	assert.Equal(t, 0, stats[1].Progress)
	assert.Equal(t, "2025-06-12", stats[2].Date)
	assert.Equal(t, 100, stats[2].Progress)
}

func TestDateRangeStats_EndBeforeStart(t *testing.T) {
	service := NewDashboardService(new(MockSnapshotStore), zap.NewNop())

	_, err := service.DateRangeStats(context.Background(), "recipient-1", "2025-06-12", "2025-06-10")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
}

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/repository"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/schedule"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// SnapshotStore loads the consistent medication snapshot used for
// completion summaries.
type SnapshotStore interface {
	FetchSnapshot(ctx context.Context, recipientID string, start, end time.Time) (*repository.DaySnapshot, error)
}

// DashboardService computes per-day medication completion summaries and
// date-range statistics from snapshot data and the domain core.
type DashboardService struct {
	snapshots SnapshotStore
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(snapshots SnapshotStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		snapshots: snapshots,
		logger:    logger,
	}
}

// MedicationStatus is the completion state of one medication on one date
type MedicationStatus struct {
	MedicationID string `json:"medication_id"`
	Name         string `json:"name"`
	schedule.CompletionState
}

// DailySummary is the dashboard view of one care recipient's day
type DailySummary struct {
	Date        string                `json:"date"`
	Completed   int                   `json:"completed"`
	Total       int                   `json:"total"`
	Progress    int                   `json:"progress"`
	Medications []MedicationStatus    `json:"medications"`
	Logs        []model.MedicationLog `json:"logs"`
}

// DayStats is one day of a date-range statistics response
type DayStats struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Progress  int    `json:"progress"`
}

// DailySummary resolves completion for every medication of a care
// recipient on one calendar day.
func (s *DashboardService) DailySummary(ctx context.Context, recipientID string, date string) (*DailySummary, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}

	day, err := time.Parse(schedule.DateKey, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	snapshot, err := s.snapshots.FetchSnapshot(ctx, recipientID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Date: date,
		Logs: []model.MedicationLog{},
	}

	var states []schedule.CompletionState
	for _, med := range snapshot.Medications {
		state := schedule.ResolveCompletion(snapshot.Schedules[med.ID], snapshot.Logs[med.ID])
		states = append(states, state)
		summary.Medications = append(summary.Medications, MedicationStatus{
			MedicationID:    med.ID,
			Name:            med.Name,
			CompletionState: state,
		})
		summary.Logs = append(summary.Logs, snapshot.Logs[med.ID]...)
	}

	sort.Slice(summary.Logs, func(i, j int) bool {
		return summary.Logs[i].TakenAt.Before(summary.Logs[j].TakenAt)
	})

	roll := schedule.Summarize(states)
	summary.Completed = roll.Completed
	summary.Total = roll.Total
	summary.Progress = roll.Progress

	s.logger.Debug("daily summary computed",
		zap.String("care_recipient_id", recipientID),
		zap.String("date", date),
		zap.Int("completed", summary.Completed),
		zap.Int("total", summary.Total),
	)

	return summary, nil
}

// DateRangeStats resolves a completion summary for every day in the
// inclusive [start, end] date range from one snapshot.
func (s *DashboardService) DateRangeStats(ctx context.Context, recipientID string, start, end string) ([]DayStats, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}

	first, err := time.Parse(schedule.DateKey, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", start)
	}
	last, err := time.Parse(schedule.DateKey, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
	}
	if last.Before(first) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	snapshot, err := s.snapshots.FetchSnapshot(ctx, recipientID, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	// Bucket logs by medication and calendar day once, then resolve each
	// day against its bucket.
	logsByDay := make(map[string]map[string][]model.MedicationLog)
	for medID, logs := range snapshot.Logs {
		for _, log := range logs {
			key := log.TakenAt.Format(schedule.DateKey)
			if logsByDay[key] == nil {
				logsByDay[key] = make(map[string][]model.MedicationLog)
			}
			logsByDay[key][medID] = append(logsByDay[key][medID], log)
		}
	}

	var stats []DayStats
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(schedule.DateKey)

		var states []schedule.CompletionState
		for _, med := range snapshot.Medications {
			states = append(states, schedule.ResolveCompletion(snapshot.Schedules[med.ID], logsByDay[key][med.ID]))
		}

		roll := schedule.Summarize(states)
		stats = append(stats, DayStats{
			Date:      key,
			Completed: roll.Completed,
			Total:     roll.Total,
			Progress:  roll.Progress,
		})
	}

	return stats, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DashboardRepository reads the medication data needed to compute
// completion summaries. Medications, schedules and logs are fetched
// inside one read-only transaction so the summary sees a consistent
// snapshot.
type DashboardRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *pgxpool.Pool, logger *zap.Logger) *DashboardRepository {
	return &DashboardRepository{
		db:     db,
		logger: logger,
	}
}

// DaySnapshot holds everything needed to resolve completion for a care
// recipient over a time range.
type DaySnapshot struct {
	Medications []model.Medication
	Schedules   map[string][]model.MedicationSchedule // keyed by medication ID
	Logs        map[string][]model.MedicationLog      // keyed by medication ID
}

// FetchSnapshot loads medications, their schedules, and the logs whose
// taken_at falls within [start, end) for one care recipient.
func (r *DashboardRepository) FetchSnapshot(ctx context.Context, recipientID string, start, end time.Time) (*DaySnapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		r.logger.Error("failed to begin snapshot transaction", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	snapshot := &DaySnapshot{
		Schedules: make(map[string][]model.MedicationSchedule),
		Logs:      make(map[string][]model.MedicationLog),
	}

	medQuery := `SELECT ` + medicationColumns + ` FROM medications WHERE care_recipient_id = $1 ORDER BY name ASC`
	medRows, err := tx.Query(ctx, medQuery, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load medications: %w", err)
	}
	for medRows.Next() {
		var med model.Medication
		if err := scanMedication(medRows, &med); err != nil {
			medRows.Close()
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		snapshot.Medications = append(snapshot.Medications, med)
	}
	if err := medRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medications: %w", err)
	}

	schedQuery := `
		SELECT
			s.id, s.medication_id, s.time_of_day, s.days_of_week, s.specific_days,
			s.as_needed, s.quantity, s.with_food, s.active, s.is_tapering,
			s.tapering_schedule, s.created_at, s.updated_at
		FROM medication_schedules s
		JOIN medications m ON m.id = s.medication_id
		WHERE m.care_recipient_id = $1
		ORDER BY s.time_of_day ASC
	`
	schedRows, err := tx.Query(ctx, schedQuery, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load medication schedules: %w", err)
	}
	for schedRows.Next() {
		var s model.MedicationSchedule
		if err := scanSchedule(schedRows, &s); err != nil {
			schedRows.Close()
			return nil, fmt.Errorf("failed to scan medication schedule: %w", err)
		}
		snapshot.Schedules[s.MedicationID] = append(snapshot.Schedules[s.MedicationID], s)
	}
	if err := schedRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medication schedules: %w", err)
	}

	logQuery := `
		SELECT l.id, l.medication_id, l.schedule_id, l.taken_at, l.notes, l.created_at
		FROM medication_logs l
		JOIN medications m ON m.id = l.medication_id
		WHERE m.care_recipient_id = $1 AND l.taken_at >= $2 AND l.taken_at < $3
		ORDER BY l.taken_at ASC
	`
	logRows, err := tx.Query(ctx, logQuery, recipientID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load medication logs: %w", err)
	}
	for logRows.Next() {
		var log model.MedicationLog
		if err := logRows.Scan(&log.ID, &log.MedicationID, &log.ScheduleID, &log.TakenAt, &log.Notes, &log.CreatedAt); err != nil {
			logRows.Close()
			return nil, fmt.Errorf("failed to scan medication log: %w", err)
		}
		snapshot.Logs[log.MedicationID] = append(snapshot.Logs[log.MedicationID], log)
	}
	if err := logRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medication logs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return snapshot, nil
}

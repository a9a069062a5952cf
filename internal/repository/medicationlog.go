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

// MedicationLogRepository manages medication intake log data. Logs are
// immutable once created; the only mutation is deletion, which is how a
// dose is unmarked.
type MedicationLogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewMedicationLogRepository creates a new MedicationLogRepository
func NewMedicationLogRepository(db *pgxpool.Pool, logger *zap.Logger) *MedicationLogRepository {
	return &MedicationLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new medication log record
func (r *MedicationLogRepository) Create(ctx context.Context, log *model.MedicationLog) error {
	query := `
		INSERT INTO medication_logs (id, medication_id, schedule_id, taken_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		log.ID,
		log.MedicationID,
		log.ScheduleID,
		log.TakenAt,
		log.Notes,
	)

	if err != nil {
		r.logger.Error("failed to create medication log",
			zap.Error(err),
			zap.String("medication_id", log.MedicationID),
		)
		return fmt.Errorf("failed to create medication log: %w", err)
	}

	return nil
}

// Delete deletes a medication log by ID
func (r *MedicationLogRepository) Delete(ctx context.Context, logID string) error {
	query := `DELETE FROM medication_logs WHERE id = $1`

	result, err := r.db.Exec(ctx, query, logID)
	if err != nil {
		r.logger.Error("failed to delete medication log",
			zap.Error(err),
			zap.String("log_id", logID),
		)
		return fmt.Errorf("failed to delete medication log: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication log not found: %s", logID)
	}

	return nil
}

// DeleteByScheduleAndRange removes all logs that fulfill a schedule
// within [start, end). Used to unmark a dose for a calendar day.
func (r *MedicationLogRepository) DeleteByScheduleAndRange(ctx context.Context, medicationID, scheduleID string, start, end time.Time) (int64, error) {
	query := `
		DELETE FROM medication_logs
		WHERE medication_id = $1 AND schedule_id = $2 AND taken_at >= $3 AND taken_at < $4
	`

	result, err := r.db.Exec(ctx, query, medicationID, scheduleID, start, end)
	if err != nil {
		r.logger.Error("failed to delete medication logs for schedule",
			zap.Error(err),
			zap.String("medication_id", medicationID),
			zap.String("schedule_id", scheduleID),
		)
		return 0, fmt.Errorf("failed to delete medication logs: %w", err)
	}

	return result.RowsAffected(), nil
}

// FindByMedicationAndRange retrieves logs for one medication within
// [start, end), newest first.
func (r *MedicationLogRepository) FindByMedicationAndRange(ctx context.Context, medicationID string, start, end time.Time) ([]model.MedicationLog, error) {
	query := `
		SELECT id, medication_id, schedule_id, taken_at, notes, created_at
		FROM medication_logs
		WHERE medication_id = $1 AND taken_at >= $2 AND taken_at < $3
		ORDER BY taken_at DESC
	`

	return r.findMany(ctx, query, medicationID, start, end)
}

// FindByID retrieves a single medication log by ID
func (r *MedicationLogRepository) FindByID(ctx context.Context, logID string) (*model.MedicationLog, error) {
	query := `
		SELECT id, medication_id, schedule_id, taken_at, notes, created_at
		FROM medication_logs
		WHERE id = $1
	`

	var log model.MedicationLog
	err := r.db.QueryRow(ctx, query, logID).Scan(&log.ID, &log.MedicationID, &log.ScheduleID, &log.TakenAt, &log.Notes, &log.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("medication log not found: %s", logID)
		}
		r.logger.Error("failed to find medication log", zap.Error(err), zap.String("log_id", logID))
		return nil, fmt.Errorf("failed to find medication log: %w", err)
	}

	return &log, nil
}

func (r *MedicationLogRepository) findMany(ctx context.Context, query string, args ...any) ([]model.MedicationLog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to find medication logs", zap.Error(err))
		return nil, fmt.Errorf("failed to find medication logs: %w", err)
	}
	defer rows.Close()

	var logs []model.MedicationLog
	for rows.Next() {
		var log model.MedicationLog
		if err := rows.Scan(&log.ID, &log.MedicationID, &log.ScheduleID, &log.TakenAt, &log.Notes, &log.CreatedAt); err != nil {
			r.logger.Error("failed to scan medication log", zap.Error(err))
			continue
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating medication logs", zap.Error(err))
		return nil, fmt.Errorf("error iterating medication logs: %w", err)
	}

	return logs, nil
}

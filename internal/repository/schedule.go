package repository

import (
	"context"
	"fmt"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ScheduleRepository manages medication schedule (recurrence rule) data
type ScheduleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		db:     db,
		logger: logger,
	}
}

const scheduleColumns = `
	id, medication_id, time_of_day, days_of_week, specific_days,
	as_needed, quantity, with_food, active, is_tapering,
	tapering_schedule, created_at, updated_at
`

func scanSchedule(row pgx.Row, s *model.MedicationSchedule) error {
	return row.Scan(
		&s.ID,
		&s.MedicationID,
		&s.Time,
		&s.DaysOfWeek,
		&s.SpecificDays,
		&s.AsNeeded,
		&s.Quantity,
		&s.WithFood,
		&s.Active,
		&s.IsTapering,
		&s.TaperingSchedule,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// Create creates a new medication schedule record
func (r *ScheduleRepository) Create(ctx context.Context, s *model.MedicationSchedule) error {
	query := `
		INSERT INTO medication_schedules (
			id, medication_id, time_of_day, days_of_week, specific_days,
			as_needed, quantity, with_food, active, is_tapering,
			tapering_schedule, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query,
		s.ID,
		s.MedicationID,
		s.Time,
		s.DaysOfWeek,
		s.SpecificDays,
		s.AsNeeded,
		s.Quantity,
		s.WithFood,
		s.Active,
		s.IsTapering,
		s.TaperingSchedule,
	)

	if err != nil {
		r.logger.Error("failed to create medication schedule",
			zap.Error(err),
			zap.String("schedule_id", s.ID),
			zap.String("medication_id", s.MedicationID),
		)
		return fmt.Errorf("failed to create medication schedule: %w", err)
	}

	return nil
}

// FindByID retrieves a schedule by ID
func (r *ScheduleRepository) FindByID(ctx context.Context, scheduleID string) (*model.MedicationSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM medication_schedules WHERE id = $1`

	var s model.MedicationSchedule
	err := scanSchedule(r.db.QueryRow(ctx, query, scheduleID), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("medication schedule not found: %s", scheduleID)
		}
		r.logger.Error("failed to find medication schedule", zap.Error(err), zap.String("schedule_id", scheduleID))
		return nil, fmt.Errorf("failed to find medication schedule: %w", err)
	}

	return &s, nil
}

// FindByMedicationID retrieves all schedules for a medication
func (r *ScheduleRepository) FindByMedicationID(ctx context.Context, medicationID string) ([]model.MedicationSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM medication_schedules WHERE medication_id = $1 ORDER BY time_of_day ASC`

	return r.findMany(ctx, query, medicationID)
}

// FindByCareRecipient retrieves all schedules across a care recipient's
// medications.
func (r *ScheduleRepository) FindByCareRecipient(ctx context.Context, recipientID string) ([]model.MedicationSchedule, error) {
	query := `
		SELECT
			s.id, s.medication_id, s.time_of_day, s.days_of_week, s.specific_days,
			s.as_needed, s.quantity, s.with_food, s.active, s.is_tapering,
			s.tapering_schedule, s.created_at, s.updated_at
		FROM medication_schedules s
		JOIN medications m ON m.id = s.medication_id
		WHERE m.care_recipient_id = $1
		ORDER BY s.time_of_day ASC
	`

	return r.findMany(ctx, query, recipientID)
}

func (r *ScheduleRepository) findMany(ctx context.Context, query string, args ...any) ([]model.MedicationSchedule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to find medication schedules", zap.Error(err))
		return nil, fmt.Errorf("failed to find medication schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.MedicationSchedule
	for rows.Next() {
		var s model.MedicationSchedule
		if err := scanSchedule(rows, &s); err != nil {
			r.logger.Error("failed to scan medication schedule", zap.Error(err))
			continue
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating medication schedules", zap.Error(err))
		return nil, fmt.Errorf("error iterating medication schedules: %w", err)
	}

	return schedules, nil
}

// Update updates an existing medication schedule record
func (r *ScheduleRepository) Update(ctx context.Context, s *model.MedicationSchedule) error {
	query := `
		UPDATE medication_schedules
		SET time_of_day = $1, days_of_week = $2, specific_days = $3,
		    as_needed = $4, quantity = $5, with_food = $6, active = $7,
		    is_tapering = $8, tapering_schedule = $9, updated_at = NOW()
		WHERE id = $10
	`

	result, err := r.db.Exec(ctx, query,
		s.Time,
		s.DaysOfWeek,
		s.SpecificDays,
		s.AsNeeded,
		s.Quantity,
		s.WithFood,
		s.Active,
		s.IsTapering,
		s.TaperingSchedule,
		s.ID,
	)

	if err != nil {
		r.logger.Error("failed to update medication schedule",
			zap.Error(err),
			zap.String("schedule_id", s.ID),
		)
		return fmt.Errorf("failed to update medication schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication schedule not found: %s", s.ID)
	}

	return nil
}

// Delete deletes a medication schedule record
func (r *ScheduleRepository) Delete(ctx context.Context, scheduleID string) error {
	query := `DELETE FROM medication_schedules WHERE id = $1`

	result, err := r.db.Exec(ctx, query, scheduleID)
	if err != nil {
		r.logger.Error("failed to delete medication schedule",
			zap.Error(err),
			zap.String("schedule_id", scheduleID),
		)
		return fmt.Errorf("failed to delete medication schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication schedule not found: %s", scheduleID)
	}

	return nil
}

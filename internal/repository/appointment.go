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

// AppointmentRepository manages appointment data
type AppointmentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *pgxpool.Pool, logger *zap.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new appointment record
func (r *AppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, care_recipient_id, title, location, notes, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query, a.ID, a.CareRecipientID, a.Title, a.Location, a.Notes, a.StartsAt, a.EndsAt)
	if err != nil {
		r.logger.Error("failed to create appointment",
			zap.Error(err),
			zap.String("appointment_id", a.ID),
		)
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

// FindByID retrieves an appointment by ID
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	query := `
		SELECT id, care_recipient_id, title, location, notes, starts_at, ends_at, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var a model.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CareRecipientID, &a.Title, &a.Location, &a.Notes, &a.StartsAt, &a.EndsAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("appointment not found: %s", id)
		}
		r.logger.Error("failed to find appointment", zap.Error(err), zap.String("appointment_id", id))
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	return &a, nil
}

// FindByCareRecipientAndRange retrieves appointments starting within
// [start, end), soonest first.
func (r *AppointmentRepository) FindByCareRecipientAndRange(ctx context.Context, recipientID string, start, end time.Time) ([]model.Appointment, error) {
	query := `
		SELECT id, care_recipient_id, title, location, notes, starts_at, ends_at, created_at, updated_at
		FROM appointments
		WHERE care_recipient_id = $1 AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at ASC
	`

	rows, err := r.db.Query(ctx, query, recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find appointments", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find appointments: %w", err)
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.CareRecipientID, &a.Title, &a.Location, &a.Notes, &a.StartsAt, &a.EndsAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			r.logger.Error("failed to scan appointment", zap.Error(err))
			continue
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, nil
}

// Update updates an existing appointment record
func (r *AppointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	query := `
		UPDATE appointments
		SET title = $1, location = $2, notes = $3, starts_at = $4, ends_at = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query, a.Title, a.Location, a.Notes, a.StartsAt, a.EndsAt, a.ID)
	if err != nil {
		r.logger.Error("failed to update appointment",
			zap.Error(err),
			zap.String("appointment_id", a.ID),
		)
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment not found: %s", a.ID)
	}

	return nil
}

// Delete deletes an appointment record
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM appointments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete appointment",
			zap.Error(err),
			zap.String("appointment_id", id),
		)
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment not found: %s", id)
	}

	return nil
}

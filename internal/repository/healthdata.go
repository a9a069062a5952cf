package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// HealthDataRepository manages the flat per-event health records: meals,
// bowel movements, urination, sleep, blood pressure, glucose and
// insulin. These carry no derived logic beyond date-range filtering.
type HealthDataRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewHealthDataRepository creates a new HealthDataRepository
func NewHealthDataRepository(db *pgxpool.Pool, logger *zap.Logger) *HealthDataRepository {
	return &HealthDataRepository{
		db:     db,
		logger: logger,
	}
}

func (r *HealthDataRepository) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.logger.Error("failed to create "+what, zap.Error(err))
		return fmt.Errorf("failed to create %s: %w", what, err)
	}
	return nil
}

func (r *HealthDataRepository) delete(ctx context.Context, what, table, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete "+what, zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s not found: %s", what, id)
	}
	return nil
}

// CreateMeal creates a meal record
func (r *HealthDataRepository) CreateMeal(ctx context.Context, m *model.Meal) error {
	return r.exec(ctx, "meal", `
		INSERT INTO meals (id, care_recipient_id, type, food, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		m.ID, m.CareRecipientID, m.Type, m.Food, m.Notes, m.OccurredAt)
}

// FindMeals retrieves meals for a care recipient within [start, end)
func (r *HealthDataRepository) FindMeals(ctx context.Context, recipientID string, start, end time.Time) ([]model.Meal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, care_recipient_id, type, food, notes, occurred_at, created_at
		FROM meals
		WHERE care_recipient_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC`,
		recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find meals", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find meals: %w", err)
	}
	defer rows.Close()

	var meals []model.Meal
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.CareRecipientID, &m.Type, &m.Food, &m.Notes, &m.OccurredAt, &m.CreatedAt); err != nil {
			r.logger.Error("failed to scan meal", zap.Error(err))
			continue
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meals: %w", err)
	}
	return meals, nil
}

// DeleteMeal deletes a meal record
func (r *HealthDataRepository) DeleteMeal(ctx context.Context, id string) error {
	return r.delete(ctx, "meal", "meals", id)
}

// CreateBowelMovement creates a bowel movement record
func (r *HealthDataRepository) CreateBowelMovement(ctx context.Context, b *model.BowelMovement) error {
	return r.exec(ctx, "bowel movement", `
		INSERT INTO bowel_movements (id, care_recipient_id, type, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		b.ID, b.CareRecipientID, b.Type, b.Notes, b.OccurredAt)
}

// FindBowelMovements retrieves bowel movements within [start, end)
func (r *HealthDataRepository) FindBowelMovements(ctx context.Context, recipientID string, start, end time.Time) ([]model.BowelMovement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, care_recipient_id, type, notes, occurred_at, created_at
		FROM bowel_movements
		WHERE care_recipient_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC`,
		recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find bowel movements", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find bowel movements: %w", err)
	}
	defer rows.Close()

	var events []model.BowelMovement
	for rows.Next() {
		var b model.BowelMovement
		if err := rows.Scan(&b.ID, &b.CareRecipientID, &b.Type, &b.Notes, &b.OccurredAt, &b.CreatedAt); err != nil {
			r.logger.Error("failed to scan bowel movement", zap.Error(err))
			continue
		}
		events = append(events, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bowel movements: %w", err)
	}
	return events, nil
}

// DeleteBowelMovement deletes a bowel movement record
func (r *HealthDataRepository) DeleteBowelMovement(ctx context.Context, id string) error {
	return r.delete(ctx, "bowel movement", "bowel_movements", id)
}

// CreateUrination creates a urination record
func (r *HealthDataRepository) CreateUrination(ctx context.Context, u *model.Urination) error {
	return r.exec(ctx, "urination record", `
		INSERT INTO urination_records (id, care_recipient_id, color, volume_ml, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		u.ID, u.CareRecipientID, u.Color, u.VolumeML, u.Notes, u.OccurredAt)
}

// FindUrinationRecords retrieves urination records within [start, end)
func (r *HealthDataRepository) FindUrinationRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Urination, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, care_recipient_id, color, volume_ml, notes, occurred_at, created_at
		FROM urination_records
		WHERE care_recipient_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC`,
		recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find urination records", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find urination records: %w", err)
	}
	defer rows.Close()

	var events []model.Urination
	for rows.Next() {
		var u model.Urination
		if err := rows.Scan(&u.ID, &u.CareRecipientID, &u.Color, &u.VolumeML, &u.Notes, &u.OccurredAt, &u.CreatedAt); err != nil {
			r.logger.Error("failed to scan urination record", zap.Error(err))
			continue
		}
		events = append(events, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating urination records: %w", err)
	}
	return events, nil
}

// DeleteUrination deletes a urination record
func (r *HealthDataRepository) DeleteUrination(ctx context.Context, id string) error {
	return r.delete(ctx, "urination record", "urination_records", id)
}

// CreateSleep creates a sleep record
func (r *HealthDataRepository) CreateSleep(ctx context.Context, s *model.Sleep) error {
	return r.exec(ctx, "sleep record", `
		INSERT INTO sleep_records (id, care_recipient_id, quality, notes, started_at, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		s.ID, s.CareRecipientID, s.Quality, s.Notes, s.StartedAt, s.EndedAt)
}

// FindSleepRecords retrieves sleep records whose start falls within [start, end)
func (r *HealthDataRepository) FindSleepRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Sleep, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, care_recipient_id, quality, notes, started_at, ended_at, created_at
		FROM sleep_records
		WHERE care_recipient_id = $1 AND started_at >= $2 AND started_at < $3
		ORDER BY started_at DESC`,
		recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find sleep records", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find sleep records: %w", err)
	}
	defer rows.Close()

	var records []model.Sleep
	for rows.Next() {
		var s model.Sleep
		if err := rows.Scan(&s.ID, &s.CareRecipientID, &s.Quality, &s.Notes, &s.StartedAt, &s.EndedAt, &s.CreatedAt); err != nil {
			r.logger.Error("failed to scan sleep record", zap.Error(err))
			continue
		}
		records = append(records, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sleep records: %w", err)
	}
	return records, nil
}

// DeleteSleep deletes a sleep record
func (r *HealthDataRepository) DeleteSleep(ctx context.Context, id string) error {
	return r.delete(ctx, "sleep record", "sleep_records", id)
}

// CreateBloodPressure creates a blood pressure reading
func (r *HealthDataRepository) CreateBloodPressure(ctx context.Context, bp *model.BloodPressure) error {
	return r.exec(ctx, "blood pressure reading", `
		INSERT INTO blood_pressure_readings (id, care_recipient_id, systolic, diastolic, pulse, oxygen, notes, measured_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
		bp.ID, bp.CareRecipientID, bp.Systolic, bp.Diastolic, bp.Pulse, bp.Oxygen, bp.Notes, bp.MeasuredAt)
}

// FindBloodPressureReadings retrieves readings within [start, end)
func (r *HealthDataRepository) FindBloodPressureReadings(ctx context.Context, recipientID string, start, end time.Time) ([]model.BloodPressure, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, care_recipient_id, systolic, diastolic, pulse, oxygen, notes, measured_at, created_at
		FROM blood_pressure_readings
		WHERE care_recipient_id = $1 AND measured_at >= $2 AND measured_at < $3
		ORDER BY measured_at DESC`,
		recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find blood pressure readings", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find blood pressure readings: %w", err)
	}
	defer rows.Close()

	var readings []model.BloodPressure
	for rows.Next() {
		var bp model.BloodPressure
		if err := rows.Scan(&bp.ID, &bp.CareRecipientID, &bp.Systolic, &bp.Diastolic, &bp.Pulse, &bp.Oxygen, &bp.Notes, &bp.MeasuredAt, &bp.CreatedAt); err != nil {
			r.logger.Error("failed to scan blood pressure reading", zap.Error(err))
			continue
		}
		readings = append(readings, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blood pressure readings: %w", err)
	}
	return readings, nil
}

// DeleteBloodPressure deletes a blood pressure reading
func (r *HealthDataRepository) DeleteBloodPressure(ctx context.Context, id string) error {
	return r.delete(ctx, "blood pressure reading", "blood_pressure_readings", id)
}

// CreateGlucose creates a glucose reading
func (r *HealthDataRepository) CreateGlucose(ctx context.Context, g *model.Glucose) error {
	return r.exec(ctx, "glucose reading", `
		INSERT INTO glucose_readings (id, care_recipient_id, level, reading_type, notes, measured_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		g.ID, g.CareRecipientID, g.Level, g.ReadingType, g.Notes, g.MeasuredAt)
}

// FindGlucoseReadings retrieves glucose readings within [start, end)
func (r *HealthDataRepository) FindGlucoseReadings(ctx context.Context, recipientID string, start, end time.Time) ([]model.Glucose, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, care_recipient_id, level, reading_type, notes, measured_at, created_at
		FROM glucose_readings
		WHERE care_recipient_id = $1 AND measured_at >= $2 AND measured_at < $3
		ORDER BY measured_at DESC`,
		recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find glucose readings", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find glucose readings: %w", err)
	}
	defer rows.Close()

	var readings []model.Glucose
	for rows.Next() {
		var g model.Glucose
		if err := rows.Scan(&g.ID, &g.CareRecipientID, &g.Level, &g.ReadingType, &g.Notes, &g.MeasuredAt, &g.CreatedAt); err != nil {
			r.logger.Error("failed to scan glucose reading", zap.Error(err))
			continue
		}
		readings = append(readings, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating glucose readings: %w", err)
	}
	return readings, nil
}

// DeleteGlucose deletes a glucose reading
func (r *HealthDataRepository) DeleteGlucose(ctx context.Context, id string) error {
	return r.delete(ctx, "glucose reading", "glucose_readings", id)
}

// CreateInsulin creates an insulin dose record
func (r *HealthDataRepository) CreateInsulin(ctx context.Context, i *model.Insulin) error {
	return r.exec(ctx, "insulin record", `
		INSERT INTO insulin_records (id, care_recipient_id, units, insulin_type, site, notes, administered_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
		i.ID, i.CareRecipientID, i.Units, i.InsulinType, i.Site, i.Notes, i.AdministeredAt)
}

// FindInsulinRecords retrieves insulin records within [start, end)
func (r *HealthDataRepository) FindInsulinRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Insulin, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, care_recipient_id, units, insulin_type, site, notes, administered_at, created_at
		FROM insulin_records
		WHERE care_recipient_id = $1 AND administered_at >= $2 AND administered_at < $3
		ORDER BY administered_at DESC`,
		recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find insulin records", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find insulin records: %w", err)
	}
	defer rows.Close()

	var records []model.Insulin
	for rows.Next() {
		var i model.Insulin
		if err := rows.Scan(&i.ID, &i.CareRecipientID, &i.Units, &i.InsulinType, &i.Site, &i.Notes, &i.AdministeredAt, &i.CreatedAt); err != nil {
			r.logger.Error("failed to scan insulin record", zap.Error(err))
			continue
		}
		records = append(records, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating insulin records: %w", err)
	}
	return records, nil
}

// DeleteInsulin deletes an insulin record
func (r *HealthDataRepository) DeleteInsulin(ctx context.Context, id string) error {
	return r.delete(ctx, "insulin record", "insulin_records", id)
}

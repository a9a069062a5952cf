package repository

import (
	"context"
	"fmt"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// MedicationRepository manages medication data and inventory counters
type MedicationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewMedicationRepository creates a new MedicationRepository
func NewMedicationRepository(db *pgxpool.Pool, logger *zap.Logger) *MedicationRepository {
	return &MedicationRepository{
		db:     db,
		logger: logger,
	}
}

const medicationColumns = `
	id, care_recipient_id, name, dosage, instructions, icon, color,
	current_quantity, reorder_threshold, days_to_reorder,
	original_quantity, refills_remaining, created_at, updated_at
`

func scanMedication(row pgx.Row, med *model.Medication) error {
	return row.Scan(
		&med.ID,
		&med.CareRecipientID,
		&med.Name,
		&med.Dosage,
		&med.Instructions,
		&med.Icon,
		&med.Color,
		&med.CurrentQuantity,
		&med.ReorderThreshold,
		&med.DaysToReorder,
		&med.OriginalQuantity,
		&med.RefillsRemaining,
		&med.CreatedAt,
		&med.UpdatedAt,
	)
}

// Create creates a new medication record
func (r *MedicationRepository) Create(ctx context.Context, med *model.Medication) error {
	query := `
		INSERT INTO medications (
			id, care_recipient_id, name, dosage, instructions, icon, color,
			current_quantity, reorder_threshold, days_to_reorder,
			original_quantity, refills_remaining, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query,
		med.ID,
		med.CareRecipientID,
		med.Name,
		med.Dosage,
		med.Instructions,
		med.Icon,
		med.Color,
		med.CurrentQuantity,
		med.ReorderThreshold,
		med.DaysToReorder,
		med.OriginalQuantity,
		med.RefillsRemaining,
	)

	if err != nil {
		r.logger.Error("failed to create medication",
			zap.Error(err),
			zap.String("medication_id", med.ID),
			zap.String("care_recipient_id", med.CareRecipientID),
		)
		return fmt.Errorf("failed to create medication: %w", err)
	}

	return nil
}

// FindByCareRecipient retrieves all medications for a care recipient
func (r *MedicationRepository) FindByCareRecipient(ctx context.Context, recipientID string) ([]model.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE care_recipient_id = $1 ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, recipientID)
	if err != nil {
		r.logger.Error("failed to find medications", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find medications: %w", err)
	}
	defer rows.Close()

	var medications []model.Medication
	for rows.Next() {
		var med model.Medication
		if err := scanMedication(rows, &med); err != nil {
			r.logger.Error("failed to scan medication", zap.Error(err))
			continue
		}
		medications = append(medications, med)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating medications", zap.Error(err))
		return nil, fmt.Errorf("error iterating medications: %w", err)
	}

	return medications, nil
}

// FindByID retrieves a medication by ID
func (r *MedicationRepository) FindByID(ctx context.Context, medicationID string) (*model.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE id = $1`

	var med model.Medication
	err := scanMedication(r.db.QueryRow(ctx, query, medicationID), &med)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("medication not found: %s", medicationID)
		}
		r.logger.Error("failed to find medication", zap.Error(err), zap.String("medication_id", medicationID))
		return nil, fmt.Errorf("failed to find medication: %w", err)
	}

	return &med, nil
}

// Update updates an existing medication record
func (r *MedicationRepository) Update(ctx context.Context, med *model.Medication) error {
	query := `
		UPDATE medications
		SET name = $1, dosage = $2, instructions = $3, icon = $4, color = $5,
		    current_quantity = $6, reorder_threshold = $7, days_to_reorder = $8,
		    original_quantity = $9, refills_remaining = $10, updated_at = NOW()
		WHERE id = $11
	`

	result, err := r.db.Exec(ctx, query,
		med.Name,
		med.Dosage,
		med.Instructions,
		med.Icon,
		med.Color,
		med.CurrentQuantity,
		med.ReorderThreshold,
		med.DaysToReorder,
		med.OriginalQuantity,
		med.RefillsRemaining,
		med.ID,
	)

	if err != nil {
		r.logger.Error("failed to update medication",
			zap.Error(err),
			zap.String("medication_id", med.ID),
		)
		return fmt.Errorf("failed to update medication: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication not found: %s", med.ID)
	}

	return nil
}

// UpdateInventory updates only the inventory counters of a medication
func (r *MedicationRepository) UpdateInventory(ctx context.Context, medicationID string, currentQuantity *int, refillsRemaining int) error {
	query := `
		UPDATE medications
		SET current_quantity = $1, refills_remaining = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, currentQuantity, refillsRemaining, medicationID)
	if err != nil {
		r.logger.Error("failed to update medication inventory",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		return fmt.Errorf("failed to update medication inventory: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication not found: %s", medicationID)
	}

	return nil
}

// Delete deletes a medication and, via cascade, its schedules and logs
func (r *MedicationRepository) Delete(ctx context.Context, medicationID string) error {
	query := `DELETE FROM medications WHERE id = $1`

	result, err := r.db.Exec(ctx, query, medicationID)
	if err != nil {
		r.logger.Error("failed to delete medication",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication not found: %s", medicationID)
	}

	return nil
}

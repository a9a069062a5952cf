package repository

import (
	"context"
	"fmt"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CareRecipientRepository manages care recipient data
type CareRecipientRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewCareRecipientRepository creates a new CareRecipientRepository
func NewCareRecipientRepository(db *pgxpool.Pool, logger *zap.Logger) *CareRecipientRepository {
	return &CareRecipientRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new care recipient record
func (r *CareRecipientRepository) Create(ctx context.Context, recipient *model.CareRecipient) error {
	query := `
		INSERT INTO care_recipients (id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query, recipient.ID, recipient.Name, recipient.Color)
	if err != nil {
		r.logger.Error("failed to create care recipient",
			zap.Error(err),
			zap.String("care_recipient_id", recipient.ID),
		)
		return fmt.Errorf("failed to create care recipient: %w", err)
	}

	return nil
}

// FindAll retrieves all care recipients, oldest first
func (r *CareRecipientRepository) FindAll(ctx context.Context) ([]model.CareRecipient, error) {
	query := `
		SELECT id, name, color, created_at, updated_at
		FROM care_recipients
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("failed to find care recipients", zap.Error(err))
		return nil, fmt.Errorf("failed to find care recipients: %w", err)
	}
	defer rows.Close()

	var recipients []model.CareRecipient
	for rows.Next() {
		var rec model.CareRecipient
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Color, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			r.logger.Error("failed to scan care recipient", zap.Error(err))
			continue
		}
		recipients = append(recipients, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating care recipients", zap.Error(err))
		return nil, fmt.Errorf("error iterating care recipients: %w", err)
	}

	return recipients, nil
}

// FindByID retrieves a care recipient by ID
func (r *CareRecipientRepository) FindByID(ctx context.Context, recipientID string) (*model.CareRecipient, error) {
	query := `
		SELECT id, name, color, created_at, updated_at
		FROM care_recipients
		WHERE id = $1
	`

	var rec model.CareRecipient
	err := r.db.QueryRow(ctx, query, recipientID).Scan(&rec.ID, &rec.Name, &rec.Color, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("care recipient not found: %s", recipientID)
		}
		r.logger.Error("failed to find care recipient", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find care recipient: %w", err)
	}

	return &rec, nil
}

// Update updates an existing care recipient record
func (r *CareRecipientRepository) Update(ctx context.Context, recipient *model.CareRecipient) error {
	query := `
		UPDATE care_recipients
		SET name = $1, color = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, recipient.Name, recipient.Color, recipient.ID)
	if err != nil {
		r.logger.Error("failed to update care recipient",
			zap.Error(err),
			zap.String("care_recipient_id", recipient.ID),
		)
		return fmt.Errorf("failed to update care recipient: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("care recipient not found: %s", recipient.ID)
	}

	return nil
}

// Delete deletes a care recipient and, via cascade, all records scoped
// to it.
func (r *CareRecipientRepository) Delete(ctx context.Context, recipientID string) error {
	query := `DELETE FROM care_recipients WHERE id = $1`

	result, err := r.db.Exec(ctx, query, recipientID)
	if err != nil {
		r.logger.Error("failed to delete care recipient",
			zap.Error(err),
			zap.String("care_recipient_id", recipientID),
		)
		return fmt.Errorf("failed to delete care recipient: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("care recipient not found: %s", recipientID)
	}

	return nil
}

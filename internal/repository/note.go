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

// NoteRepository manages care note data. Content arrives already
// encrypted when the note service has an encryption key configured;
// the repository stores whatever it is given.
type NoteRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool, logger *zap.Logger) *NoteRepository {
	return &NoteRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new note record
func (r *NoteRepository) Create(ctx context.Context, n *model.Note) error {
	query := `
		INSERT INTO notes (id, care_recipient_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query, n.ID, n.CareRecipientID, n.Title, n.Content)
	if err != nil {
		r.logger.Error("failed to create note",
			zap.Error(err),
			zap.String("note_id", n.ID),
		)
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// FindByID retrieves a note by ID
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*model.Note, error) {
	query := `
		SELECT id, care_recipient_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = $1
	`

	var n model.Note
	err := r.db.QueryRow(ctx, query, id).Scan(&n.ID, &n.CareRecipientID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("note not found: %s", id)
		}
		r.logger.Error("failed to find note", zap.Error(err), zap.String("note_id", id))
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &n, nil
}

// FindByCareRecipientAndRange retrieves notes created within
// [start, end), newest first.
func (r *NoteRepository) FindByCareRecipientAndRange(ctx context.Context, recipientID string, start, end time.Time) ([]model.Note, error) {
	query := `
		SELECT id, care_recipient_id, title, content, created_at, updated_at
		FROM notes
		WHERE care_recipient_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, recipientID, start, end)
	if err != nil {
		r.logger.Error("failed to find notes", zap.Error(err), zap.String("care_recipient_id", recipientID))
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.CareRecipientID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			r.logger.Error("failed to scan note", zap.Error(err))
			continue
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// Update updates an existing note record
func (r *NoteRepository) Update(ctx context.Context, n *model.Note) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, n.Title, n.Content, n.ID)
	if err != nil {
		r.logger.Error("failed to update note",
			zap.Error(err),
			zap.String("note_id", n.ID),
		)
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note not found: %s", n.ID)
	}

	return nil
}

// Delete deletes a note record
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete note",
			zap.Error(err),
			zap.String("note_id", id),
		)
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note not found: %s", id)
	}

	return nil
}

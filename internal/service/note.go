package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/audit"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// NoteStore defines the interface for note persistence
type NoteStore interface {
	Create(ctx context.Context, n *model.Note) error
	FindByID(ctx context.Context, id string) (*model.Note, error)
	FindByCareRecipientAndRange(ctx context.Context, recipientID string, start, end time.Time) ([]model.Note, error)
	Update(ctx context.Context, n *model.Note) error
	Delete(ctx context.Context, id string) error
}

// NoteCipher encrypts note content at rest. A nil cipher means notes
// are stored in plaintext.
type NoteCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// NoteService handles care note business logic. When a cipher is
// configured, content is encrypted before it reaches the repository and
// decrypted on the way out; the model always carries plaintext.
type NoteService struct {
	notes   NoteStore
	cipher  NoteCipher
	auditor AuditRecorder
	logger  *zap.Logger
}

// NewNoteService creates a new NoteService. cipher may be nil to store
// notes unencrypted.
func NewNoteService(notes NoteStore, cipher NoteCipher, auditor AuditRecorder, logger *zap.Logger) *NoteService {
	return &NoteService{
		notes:   notes,
		cipher:  cipher,
		auditor: auditor,
		logger:  logger,
	}
}

func (s *NoteService) seal(content string) (string, error) {
	if s.cipher == nil {
		return content, nil
	}
	sealed, err := s.cipher.Encrypt(content)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt note content: %w", err)
	}
	return sealed, nil
}

func (s *NoteService) open(content string) (string, error) {
	if s.cipher == nil {
		return content, nil
	}
	opened, err := s.cipher.Decrypt(content)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt note content: %w", err)
	}
	return opened, nil
}

// CreateNote validates and creates a note
func (s *NoteService) CreateNote(ctx context.Context, n *model.Note) error {
	if n.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if n.Content == "" {
		return fmt.Errorf("note content is required")
	}

	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	plaintext := n.Content
	sealed, err := s.seal(plaintext)
	if err != nil {
		return err
	}

	stored := *n
	stored.Content = sealed
	if err := s.notes.Create(ctx, &stored); err != nil {
		return err
	}

	s.logger.Info("note created",
		zap.String("note_id", n.ID),
		zap.String("care_recipient_id", n.CareRecipientID),
	)
	s.auditor.Record(ctx, audit.OperationCreate, audit.ResourceNote, n.ID, n.CareRecipientID, "note created")

	return nil
}

// GetNote retrieves a note by ID with its content decrypted
func (s *NoteService) GetNote(ctx context.Context, id string) (*model.Note, error) {
	if id == "" {
		return nil, fmt.Errorf("note ID is required")
	}

	n, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n.Content, err = s.open(n.Content)
	if err != nil {
		return nil, err
	}

	return n, nil
}

// GetNotes retrieves notes created within [start, end), decrypted
func (s *NoteService) GetNotes(ctx context.Context, recipientID string, start, end time.Time) ([]model.Note, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}

	notes, err := s.notes.FindByCareRecipientAndRange(ctx, recipientID, start, end)
	if err != nil {
		return nil, err
	}

	for i := range notes {
		notes[i].Content, err = s.open(notes[i].Content)
		if err != nil {
			return nil, err
		}
	}

	return notes, nil
}

// UpdateNote validates and updates a note
func (s *NoteService) UpdateNote(ctx context.Context, n *model.Note) error {
	if n.ID == "" {
		return fmt.Errorf("note ID is required")
	}
	if n.Content == "" {
		return fmt.Errorf("note content is required")
	}

	sealed, err := s.seal(n.Content)
	if err != nil {
		return err
	}

	stored := *n
	stored.Content = sealed
	if err := s.notes.Update(ctx, &stored); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationUpdate, audit.ResourceNote, n.ID, n.CareRecipientID, "note updated")
	return nil
}

// DeleteNote deletes a note
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("note ID is required")
	}

	n, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationDelete, audit.ResourceNote, id, n.CareRecipientID, "note deleted")
	return nil
}

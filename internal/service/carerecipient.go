package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/audit"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// CareRecipientStore defines the interface for care recipient persistence
type CareRecipientStore interface {
	Create(ctx context.Context, recipient *model.CareRecipient) error
	FindAll(ctx context.Context) ([]model.CareRecipient, error)
	FindByID(ctx context.Context, recipientID string) (*model.CareRecipient, error)
	Update(ctx context.Context, recipient *model.CareRecipient) error
	Delete(ctx context.Context, recipientID string) error
}

// CareRecipientService handles care recipient business logic
type CareRecipientService struct {
	recipients CareRecipientStore
	auditor    AuditRecorder
	logger     *zap.Logger
}

// NewCareRecipientService creates a new CareRecipientService
func NewCareRecipientService(recipients CareRecipientStore, auditor AuditRecorder, logger *zap.Logger) *CareRecipientService {
	return &CareRecipientService{
		recipients: recipients,
		auditor:    auditor,
		logger:     logger,
	}
}

// CreateCareRecipient validates and creates a care recipient
func (s *CareRecipientService) CreateCareRecipient(ctx context.Context, recipient *model.CareRecipient) error {
	if recipient.Name == "" {
		return fmt.Errorf("care recipient name is required")
	}

	if recipient.ID == "" {
		recipient.ID = uuid.New().String()
	}
	if recipient.Color == "" {
		recipient.Color = "#4f46e5"
	}

	if err := s.recipients.Create(ctx, recipient); err != nil {
		return err
	}

	s.logger.Info("care recipient created",
		zap.String("care_recipient_id", recipient.ID),
		zap.String("name", recipient.Name),
	)
	s.auditor.Record(ctx, audit.OperationCreate, audit.ResourceCareRecipient, recipient.ID, recipient.ID, recipient.Name)

	return nil
}

// GetCareRecipients retrieves all care recipients
func (s *CareRecipientService) GetCareRecipients(ctx context.Context) ([]model.CareRecipient, error) {
	return s.recipients.FindAll(ctx)
}

// GetCareRecipient retrieves a care recipient by ID
func (s *CareRecipientService) GetCareRecipient(ctx context.Context, recipientID string) (*model.CareRecipient, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.recipients.FindByID(ctx, recipientID)
}

// UpdateCareRecipient validates and updates a care recipient
func (s *CareRecipientService) UpdateCareRecipient(ctx context.Context, recipient *model.CareRecipient) error {
	if recipient.ID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if recipient.Name == "" {
		return fmt.Errorf("care recipient name is required")
	}

	if err := s.recipients.Update(ctx, recipient); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationUpdate, audit.ResourceCareRecipient, recipient.ID, recipient.ID, recipient.Name)
	return nil
}

// DeleteCareRecipient deletes a care recipient and all records scoped
// to it.
func (s *CareRecipientService) DeleteCareRecipient(ctx context.Context, recipientID string) error {
	if recipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}

	recipient, err := s.recipients.FindByID(ctx, recipientID)
	if err != nil {
		return err
	}

	if err := s.recipients.Delete(ctx, recipientID); err != nil {
		return err
	}

	s.logger.Info("care recipient deleted", zap.String("care_recipient_id", recipientID))
	s.auditor.Record(ctx, audit.OperationDelete, audit.ResourceCareRecipient, recipientID, recipientID, recipient.Name)

	return nil
}

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

// AppointmentStore defines the interface for appointment persistence
type AppointmentStore interface {
	Create(ctx context.Context, a *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindByCareRecipientAndRange(ctx context.Context, recipientID string, start, end time.Time) ([]model.Appointment, error)
	Update(ctx context.Context, a *model.Appointment) error
	Delete(ctx context.Context, id string) error
}

// AppointmentService handles appointment business logic
type AppointmentService struct {
	appointments AppointmentStore
	auditor      AuditRecorder
	logger       *zap.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appointments AppointmentStore, auditor AuditRecorder, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		auditor:      auditor,
		logger:       logger,
	}
}

func validateAppointment(a *model.Appointment) error {
	if a.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if a.Title == "" {
		return fmt.Errorf("appointment title is required")
	}
	if a.StartsAt.IsZero() {
		return fmt.Errorf("appointment start time is required")
	}
	if a.EndsAt != nil && a.EndsAt.Before(a.StartsAt) {
		return fmt.Errorf("appointment end time cannot be before start time")
	}
	return nil
}

// CreateAppointment validates and creates an appointment
func (s *AppointmentService) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	if err := validateAppointment(a); err != nil {
		return err
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		return err
	}

	s.logger.Info("appointment created",
		zap.String("appointment_id", a.ID),
		zap.String("care_recipient_id", a.CareRecipientID),
		zap.Time("starts_at", a.StartsAt),
	)
	s.auditor.Record(ctx, audit.OperationCreate, audit.ResourceAppointment, a.ID, a.CareRecipientID, a.Title)

	return nil
}

// GetAppointment retrieves an appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("appointment ID is required")
	}
	return s.appointments.FindByID(ctx, id)
}

// GetAppointments retrieves appointments starting within [start, end)
func (s *AppointmentService) GetAppointments(ctx context.Context, recipientID string, start, end time.Time) ([]model.Appointment, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.appointments.FindByCareRecipientAndRange(ctx, recipientID, start, end)
}

// UpdateAppointment validates and updates an appointment
func (s *AppointmentService) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	if a.ID == "" {
		return fmt.Errorf("appointment ID is required")
	}
	if err := validateAppointment(a); err != nil {
		return err
	}

	if err := s.appointments.Update(ctx, a); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationUpdate, audit.ResourceAppointment, a.ID, a.CareRecipientID, a.Title)
	return nil
}

// DeleteAppointment deletes an appointment
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("appointment ID is required")
	}

	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationDelete, audit.ResourceAppointment, id, a.CareRecipientID, a.Title)
	return nil
}

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/audit"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/schedule"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// MedicationStore defines the interface for medication persistence
type MedicationStore interface {
	Create(ctx context.Context, med *model.Medication) error
	FindByCareRecipient(ctx context.Context, recipientID string) ([]model.Medication, error)
	FindByID(ctx context.Context, medicationID string) (*model.Medication, error)
	Update(ctx context.Context, med *model.Medication) error
	UpdateInventory(ctx context.Context, medicationID string, currentQuantity *int, refillsRemaining int) error
	Delete(ctx context.Context, medicationID string) error
}

// ScheduleStore defines the interface for medication schedule persistence
type ScheduleStore interface {
	Create(ctx context.Context, s *model.MedicationSchedule) error
	FindByID(ctx context.Context, scheduleID string) (*model.MedicationSchedule, error)
	FindByMedicationID(ctx context.Context, medicationID string) ([]model.MedicationSchedule, error)
	FindByCareRecipient(ctx context.Context, recipientID string) ([]model.MedicationSchedule, error)
	Update(ctx context.Context, s *model.MedicationSchedule) error
	Delete(ctx context.Context, scheduleID string) error
}

// MedicationLogStore defines the interface for intake log persistence
type MedicationLogStore interface {
	Create(ctx context.Context, log *model.MedicationLog) error
	Delete(ctx context.Context, logID string) error
	DeleteByScheduleAndRange(ctx context.Context, medicationID, scheduleID string, start, end time.Time) (int64, error)
	FindByID(ctx context.Context, logID string) (*model.MedicationLog, error)
	FindByMedicationAndRange(ctx context.Context, medicationID string, start, end time.Time) ([]model.MedicationLog, error)
}

// AuditRecorder records audit entries for mutating operations
type AuditRecorder interface {
	Record(ctx context.Context, op audit.OperationType, resource audit.ResourceType, resourceID, recipientID, detail string)
}

// MedicationService handles medication, schedule and intake log business
// logic: CRUD, the dose-taken toggle, upcoming dose expansion, reorder
// alerts and inventory bookkeeping.
type MedicationService struct {
	medications MedicationStore
	schedules   ScheduleStore
	logs        MedicationLogStore
	auditor     AuditRecorder
	logger      *zap.Logger
	now         func() time.Time
}

// NewMedicationService creates a new MedicationService. now may be nil,
// in which case the wall clock is used.
func NewMedicationService(medications MedicationStore, schedules ScheduleStore, logs MedicationLogStore, auditor AuditRecorder, logger *zap.Logger, now func() time.Time) *MedicationService {
	if now == nil {
		now = time.Now
	}
	return &MedicationService{
		medications: medications,
		schedules:   schedules,
		logs:        logs,
		auditor:     auditor,
		logger:      logger,
		now:         now,
	}
}

// clampDaysToReorder normalizes the reorder lead time: default 7 days,
// bounded to [1, 30].
func clampDaysToReorder(days int) int {
	switch {
	case days == 0:
		return 7
	case days < 1:
		return 1
	case days > 30:
		return 30
	}
	return days
}

// CreateMedication validates and creates a medication
func (s *MedicationService) CreateMedication(ctx context.Context, med *model.Medication) error {
	if med.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if med.Name == "" {
		return fmt.Errorf("medication name is required")
	}
	if med.CurrentQuantity != nil && *med.CurrentQuantity < 0 {
		return fmt.Errorf("current quantity cannot be negative")
	}
	if med.RefillsRemaining < 0 {
		return fmt.Errorf("refills remaining cannot be negative")
	}

	if med.ID == "" {
		med.ID = uuid.New().String()
	}
	med.DaysToReorder = clampDaysToReorder(med.DaysToReorder)

	if err := s.medications.Create(ctx, med); err != nil {
		return err
	}

	s.logger.Info("medication created",
		zap.String("medication_id", med.ID),
		zap.String("care_recipient_id", med.CareRecipientID),
		zap.String("name", med.Name),
	)
	s.auditor.Record(ctx, audit.OperationCreate, audit.ResourceMedication, med.ID, med.CareRecipientID, med.Name)

	return nil
}

// GetMedications retrieves all medications for a care recipient
func (s *MedicationService) GetMedications(ctx context.Context, recipientID string) ([]model.Medication, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.medications.FindByCareRecipient(ctx, recipientID)
}

// GetMedication retrieves a single medication by ID
func (s *MedicationService) GetMedication(ctx context.Context, medicationID string) (*model.Medication, error) {
	if medicationID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}
	return s.medications.FindByID(ctx, medicationID)
}

// UpdateMedication validates and updates a medication
func (s *MedicationService) UpdateMedication(ctx context.Context, med *model.Medication) error {
	if med.ID == "" {
		return fmt.Errorf("medication ID is required")
	}
	if med.Name == "" {
		return fmt.Errorf("medication name is required")
	}
	if med.CurrentQuantity != nil && *med.CurrentQuantity < 0 {
		return fmt.Errorf("current quantity cannot be negative")
	}
	if med.RefillsRemaining < 0 {
		return fmt.Errorf("refills remaining cannot be negative")
	}

	med.DaysToReorder = clampDaysToReorder(med.DaysToReorder)

	if err := s.medications.Update(ctx, med); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationUpdate, audit.ResourceMedication, med.ID, med.CareRecipientID, med.Name)
	return nil
}

// DeleteMedication deletes a medication and its schedules and logs
func (s *MedicationService) DeleteMedication(ctx context.Context, medicationID string) error {
	if medicationID == "" {
		return fmt.Errorf("medication ID is required")
	}

	med, err := s.medications.FindByID(ctx, medicationID)
	if err != nil {
		return err
	}

	if err := s.medications.Delete(ctx, medicationID); err != nil {
		return err
	}

	s.logger.Info("medication deleted", zap.String("medication_id", medicationID))
	s.auditor.Record(ctx, audit.OperationDelete, audit.ResourceMedication, medicationID, med.CareRecipientID, med.Name)

	return nil
}

// validateSchedule checks the recurrence data of a schedule before it is
// persisted. As-needed schedules carry no due time; everything else must
// have a parseable "HH:MM" time.
func validateSchedule(s *model.MedicationSchedule) error {
	if s.MedicationID == "" {
		return fmt.Errorf("medication ID is required")
	}

	if !s.AsNeeded {
		if _, err := time.Parse("15:04", s.Time); err != nil {
			return fmt.Errorf("invalid schedule time %q: expected HH:MM", s.Time)
		}
	}

	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid day of week %d: expected 0 (Sunday) through 6 (Saturday)", d)
		}
	}

	for _, day := range s.SpecificDays {
		if _, err := time.Parse(schedule.DateKey, day); err != nil {
			return fmt.Errorf("invalid specific day %q: expected YYYY-MM-DD", day)
		}
	}

	for _, step := range s.TaperingSchedule {
		if _, err := time.Parse(schedule.DateKey, step.StartDate); err != nil {
			return fmt.Errorf("invalid tapering start date %q: expected YYYY-MM-DD", step.StartDate)
		}
		if _, err := time.Parse(schedule.DateKey, step.EndDate); err != nil {
			return fmt.Errorf("invalid tapering end date %q: expected YYYY-MM-DD", step.EndDate)
		}
	}

	return nil
}

// CreateSchedule validates and creates a medication schedule
func (s *MedicationService) CreateSchedule(ctx context.Context, sched *model.MedicationSchedule) error {
	if err := validateSchedule(sched); err != nil {
		return err
	}

	med, err := s.medications.FindByID(ctx, sched.MedicationID)
	if err != nil {
		return err
	}

	if sched.ID == "" {
		sched.ID = uuid.New().String()
	}

	if err := s.schedules.Create(ctx, sched); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationCreate, audit.ResourceMedicationSchedule, sched.ID, med.CareRecipientID, med.Name)
	return nil
}

// GetSchedule retrieves a schedule by ID
func (s *MedicationService) GetSchedule(ctx context.Context, scheduleID string) (*model.MedicationSchedule, error) {
	if scheduleID == "" {
		return nil, fmt.Errorf("schedule ID is required")
	}
	return s.schedules.FindByID(ctx, scheduleID)
}

// GetSchedules retrieves all schedules for a medication
func (s *MedicationService) GetSchedules(ctx context.Context, medicationID string) ([]model.MedicationSchedule, error) {
	if medicationID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}
	return s.schedules.FindByMedicationID(ctx, medicationID)
}

// UpdateSchedule validates and updates a medication schedule
func (s *MedicationService) UpdateSchedule(ctx context.Context, sched *model.MedicationSchedule) error {
	if sched.ID == "" {
		return fmt.Errorf("schedule ID is required")
	}
	if err := validateSchedule(sched); err != nil {
		return err
	}

	med, err := s.medications.FindByID(ctx, sched.MedicationID)
	if err != nil {
		return err
	}

	if err := s.schedules.Update(ctx, sched); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationUpdate, audit.ResourceMedicationSchedule, sched.ID, med.CareRecipientID, med.Name)
	return nil
}

// DeleteSchedule deletes a medication schedule
func (s *MedicationService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	if scheduleID == "" {
		return fmt.Errorf("schedule ID is required")
	}

	sched, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}

	med, err := s.medications.FindByID(ctx, sched.MedicationID)
	if err != nil {
		return err
	}

	if err := s.schedules.Delete(ctx, scheduleID); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.OperationDelete, audit.ResourceMedicationSchedule, scheduleID, med.CareRecipientID, med.Name)
	return nil
}

// MarkDoseTaken records that a dose was taken. When scheduleID is set it
// must belong to the medication. A zero takenAt defaults to now.
func (s *MedicationService) MarkDoseTaken(ctx context.Context, medicationID string, scheduleID *string, takenAt time.Time, notes *string) (*model.MedicationLog, error) {
	if medicationID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}

	med, err := s.medications.FindByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}

	if scheduleID != nil {
		sched, err := s.schedules.FindByID(ctx, *scheduleID)
		if err != nil {
			return nil, err
		}
		if sched.MedicationID != medicationID {
			return nil, fmt.Errorf("schedule %s does not belong to medication %s", *scheduleID, medicationID)
		}
	}

	if takenAt.IsZero() {
		takenAt = s.now()
	}

	log := &model.MedicationLog{
		ID:           uuid.New().String(),
		MedicationID: medicationID,
		ScheduleID:   scheduleID,
		TakenAt:      takenAt,
		Notes:        notes,
	}

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info("dose marked taken",
		zap.String("medication_id", medicationID),
		zap.Time("taken_at", takenAt),
	)
	s.auditor.Record(ctx, audit.OperationCreate, audit.ResourceMedicationLog, log.ID, med.CareRecipientID, med.Name)

	return log, nil
}

// UnmarkDose removes every log that fulfills a schedule on a calendar
// day, returning the number of logs removed. Unmarking an already
// unmarked dose removes nothing and is not an error, so marking and
// unmarking form an idempotent toggle.
func (s *MedicationService) UnmarkDose(ctx context.Context, medicationID, scheduleID, date string) (int64, error) {
	if medicationID == "" {
		return 0, fmt.Errorf("medication ID is required")
	}
	if scheduleID == "" {
		return 0, fmt.Errorf("schedule ID is required")
	}

	day, err := time.Parse(schedule.DateKey, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	removed, err := s.logs.DeleteByScheduleAndRange(ctx, medicationID, scheduleID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		med, err := s.medications.FindByID(ctx, medicationID)
		if err == nil {
			s.auditor.Record(ctx, audit.OperationDelete, audit.ResourceMedicationLog, scheduleID, med.CareRecipientID, med.Name)
		}
	}

	return removed, nil
}

// DeleteLog removes a single intake log by ID. Unlike UnmarkDose this
// targets one specific log, including manual entries with no schedule.
func (s *MedicationService) DeleteLog(ctx context.Context, logID string) error {
	if logID == "" {
		return fmt.Errorf("log ID is required")
	}

	log, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		return err
	}

	if err := s.logs.Delete(ctx, logID); err != nil {
		return err
	}

	s.logger.Info("medication log deleted",
		zap.String("log_id", logID),
		zap.String("medication_id", log.MedicationID),
	)
	med, err := s.medications.FindByID(ctx, log.MedicationID)
	if err == nil {
		s.auditor.Record(ctx, audit.OperationDelete, audit.ResourceMedicationLog, logID, med.CareRecipientID, med.Name)
	}

	return nil
}

// GetLogs retrieves intake logs for a medication within [start, end)
func (s *MedicationService) GetLogs(ctx context.Context, medicationID string, start, end time.Time) ([]model.MedicationLog, error) {
	if medicationID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}
	return s.logs.FindByMedicationAndRange(ctx, medicationID, start, end)
}

// UpcomingDose is a dose instance enriched with medication identity for
// display.
type UpcomingDose struct {
	schedule.DoseInstance
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
}

// UpcomingDoses groups what is still due: timed doses for the rest of
// today and all of tomorrow, plus as-needed medications listed without
// due times.
type UpcomingDoses struct {
	Scheduled []UpcomingDose `json:"scheduled"`
	AsNeeded  []UpcomingDose `json:"as_needed"`
}

// UpcomingDoses expands every schedule of a care recipient's medications
// over today and tomorrow. Today's doses whose due time has already
// passed are excluded; tomorrow's are always included.
func (s *MedicationService) UpcomingDoses(ctx context.Context, recipientID string) (*UpcomingDoses, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}

	medications, err := s.medications.FindByCareRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	window := schedule.Window{Start: now, End: now.AddDate(0, 0, 1)}

	result := &UpcomingDoses{}
	for _, med := range medications {
		schedules, err := s.schedules.FindByMedicationID(ctx, med.ID)
		if err != nil {
			return nil, err
		}

		for _, sched := range schedules {
			if sched.AsNeeded && sched.Active {
				result.AsNeeded = append(result.AsNeeded, UpcomingDose{
					DoseInstance: schedule.DoseInstance{
						MedicationID: med.ID,
						ScheduleID:   sched.ID,
						Quantity:     sched.Quantity,
						WithFood:     sched.WithFood,
					},
					MedicationName: med.Name,
					Dosage:         med.Dosage,
				})
				continue
			}

			for _, inst := range schedule.Expand(sched, window, now) {
				result.Scheduled = append(result.Scheduled, UpcomingDose{
					DoseInstance:   inst,
					MedicationName: med.Name,
					Dosage:         med.Dosage,
				})
			}
		}
	}

	sort.Slice(result.Scheduled, func(i, j int) bool {
		a, b := result.Scheduled[i], result.Scheduled[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.MedicationName < b.MedicationName
	})

	return result, nil
}

// ReorderAlerts returns the medications flagged by the depletion
// forecast, either because stock already reached the reorder threshold
// or because it is forecast to within the reorder lead time.
func (s *MedicationService) ReorderAlerts(ctx context.Context, recipientID string) ([]model.Medication, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}

	medications, err := s.medications.FindByCareRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	var alerts []model.Medication
	for _, med := range medications {
		schedules, err := s.schedules.FindByMedicationID(ctx, med.ID)
		if err != nil {
			return nil, err
		}
		if schedule.NeedsReorder(med, schedules) {
			alerts = append(alerts, med)
		}
	}

	return alerts, nil
}

// RecordRefill resets a medication's stock to its original fill quantity
// and consumes one refill.
func (s *MedicationService) RecordRefill(ctx context.Context, medicationID string) (*model.Medication, error) {
	if medicationID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}

	med, err := s.medications.FindByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}

	if med.OriginalQuantity == nil {
		return nil, fmt.Errorf("medication %s has no original fill quantity configured", medicationID)
	}
	if med.RefillsRemaining <= 0 {
		return nil, fmt.Errorf("medication %s has no refills remaining", medicationID)
	}

	quantity := *med.OriginalQuantity
	med.CurrentQuantity = &quantity
	med.RefillsRemaining--

	if err := s.medications.UpdateInventory(ctx, medicationID, med.CurrentQuantity, med.RefillsRemaining); err != nil {
		return nil, err
	}

	s.logger.Info("refill recorded",
		zap.String("medication_id", medicationID),
		zap.Int("current_quantity", quantity),
		zap.Int("refills_remaining", med.RefillsRemaining),
	)
	s.auditor.Record(ctx, audit.OperationUpdate, audit.ResourceMedication, medicationID, med.CareRecipientID, "refill recorded")

	return med, nil
}

// UpdateInventory sets a medication's inventory counters directly
func (s *MedicationService) UpdateInventory(ctx context.Context, medicationID string, currentQuantity *int, refillsRemaining int) (*model.Medication, error) {
	if medicationID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}
	if currentQuantity != nil && *currentQuantity < 0 {
		return nil, fmt.Errorf("current quantity cannot be negative")
	}
	if refillsRemaining < 0 {
		return nil, fmt.Errorf("refills remaining cannot be negative")
	}

	if err := s.medications.UpdateInventory(ctx, medicationID, currentQuantity, refillsRemaining); err != nil {
		return nil, err
	}

	med, err := s.medications.FindByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.OperationUpdate, audit.ResourceMedication, medicationID, med.CareRecipientID, "inventory updated")
	return med, nil
}

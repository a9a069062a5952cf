package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/pdf"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/schedule"
)

// ReportRenderer renders assembled report data to a document
type ReportRenderer interface {
	Generate(data *pdf.ReportData) ([]byte, error)
}

// ReportService assembles care summary reports: medication adherence
// from the dashboard, vitals and meals, appointments and decrypted
// notes over a date range, rendered to PDF.
type ReportService struct {
	recipients   CareRecipientStore
	medications  MedicationStore
	dashboard    *DashboardService
	health       HealthDataStore
	appointments AppointmentStore
	notes        *NoteService
	renderer     ReportRenderer
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService creates a new ReportService. now may be nil, in
// which case the wall clock is used.
func NewReportService(
	recipients CareRecipientStore,
	medications MedicationStore,
	dashboard *DashboardService,
	health HealthDataStore,
	appointments AppointmentStore,
	notes *NoteService,
	renderer ReportRenderer,
	logger *zap.Logger,
	now func() time.Time,
) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		recipients:   recipients,
		medications:  medications,
		dashboard:    dashboard,
		health:       health,
		appointments: appointments,
		notes:        notes,
		renderer:     renderer,
		logger:       logger,
		now:          now,
	}
}

// CareSummary builds and renders the care summary PDF for one care
// recipient over the inclusive [start, end] date range.
func (s *ReportService) CareSummary(ctx context.Context, recipientID, start, end string) ([]byte, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}

	first, err := time.Parse(schedule.DateKey, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", start)
	}
	last, err := time.Parse(schedule.DateKey, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
	}
	if last.Before(first) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	rangeEnd := last.AddDate(0, 0, 1)

	recipient, err := s.recipients.FindByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	medications, err := s.medications.FindByCareRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	stats, err := s.dashboard.DateRangeStats(ctx, recipientID, start, end)
	if err != nil {
		return nil, err
	}

	bloodPressure, err := s.health.FindBloodPressureReadings(ctx, recipientID, first, rangeEnd)
	if err != nil {
		return nil, err
	}

	glucose, err := s.health.FindGlucoseReadings(ctx, recipientID, first, rangeEnd)
	if err != nil {
		return nil, err
	}

	meals, err := s.health.FindMeals(ctx, recipientID, first, rangeEnd)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.FindByCareRecipientAndRange(ctx, recipientID, first, rangeEnd)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.GetNotes(ctx, recipientID, first, rangeEnd)
	if err != nil {
		return nil, err
	}

	adherence := make([]pdf.AdherenceDay, 0, len(stats))
	for _, day := range stats {
		adherence = append(adherence, pdf.AdherenceDay{
			Date:      day.Date,
			Completed: day.Completed,
			Total:     day.Total,
			Progress:  day.Progress,
		})
	}

	data := &pdf.ReportData{
		RecipientName: recipient.Name,
		DateRange:     fmt.Sprintf("%s to %s", start, end),
		GeneratedAt:   s.now().Format("2006-01-02 15:04"),
		Medications:   medications,
		Adherence:     adherence,
		BloodPressure: bloodPressure,
		Glucose:       glucose,
		Meals:         meals,
		Appointments:  appointments,
		Notes:         notes,
	}

	s.logger.Info("care summary assembled",
		zap.String("care_recipient_id", recipientID),
		zap.String("range", data.DateRange),
		zap.Int("medications", len(medications)),
		zap.Int("notes", len(notes)),
	)

	return s.renderer.Generate(data)
}

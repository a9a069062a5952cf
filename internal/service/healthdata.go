package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// HealthDataStore defines the interface for flat health event persistence
type HealthDataStore interface {
	CreateMeal(ctx context.Context, m *model.Meal) error
	FindMeals(ctx context.Context, recipientID string, start, end time.Time) ([]model.Meal, error)
	DeleteMeal(ctx context.Context, id string) error

	CreateBowelMovement(ctx context.Context, b *model.BowelMovement) error
	FindBowelMovements(ctx context.Context, recipientID string, start, end time.Time) ([]model.BowelMovement, error)
	DeleteBowelMovement(ctx context.Context, id string) error

	CreateUrination(ctx context.Context, u *model.Urination) error
	FindUrinationRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Urination, error)
	DeleteUrination(ctx context.Context, id string) error

	CreateSleep(ctx context.Context, s *model.Sleep) error
	FindSleepRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Sleep, error)
	DeleteSleep(ctx context.Context, id string) error

	CreateBloodPressure(ctx context.Context, bp *model.BloodPressure) error
	FindBloodPressureReadings(ctx context.Context, recipientID string, start, end time.Time) ([]model.BloodPressure, error)
	DeleteBloodPressure(ctx context.Context, id string) error

	CreateGlucose(ctx context.Context, g *model.Glucose) error
	FindGlucoseReadings(ctx context.Context, recipientID string, start, end time.Time) ([]model.Glucose, error)
	DeleteGlucose(ctx context.Context, id string) error

	CreateInsulin(ctx context.Context, i *model.Insulin) error
	FindInsulinRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Insulin, error)
	DeleteInsulin(ctx context.Context, id string) error
}

// HealthDataService handles the flat per-event health records. These
// carry no derived logic; the service validates, assigns IDs and
// timestamps, and delegates.
type HealthDataService struct {
	store  HealthDataStore
	logger *zap.Logger
	now    func() time.Time
}

// NewHealthDataService creates a new HealthDataService. now may be nil,
// in which case the wall clock is used.
func NewHealthDataService(store HealthDataStore, logger *zap.Logger, now func() time.Time) *HealthDataService {
	if now == nil {
		now = time.Now
	}
	return &HealthDataService{
		store:  store,
		logger: logger,
		now:    now,
	}
}

// CreateMeal validates and creates a meal record
func (s *HealthDataService) CreateMeal(ctx context.Context, m *model.Meal) error {
	if m.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if m.Food == "" {
		return fmt.Errorf("meal food description is required")
	}

	switch m.Type {
	case "breakfast", "lunch", "dinner", "snack":
	default:
		return fmt.Errorf("invalid meal type %q: expected breakfast, lunch, dinner or snack", m.Type)
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.OccurredAt.IsZero() {
		m.OccurredAt = s.now()
	}

	return s.store.CreateMeal(ctx, m)
}

// GetMeals retrieves meals within [start, end)
func (s *HealthDataService) GetMeals(ctx context.Context, recipientID string, start, end time.Time) ([]model.Meal, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.store.FindMeals(ctx, recipientID, start, end)
}

// DeleteMeal deletes a meal record
func (s *HealthDataService) DeleteMeal(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("meal ID is required")
	}
	return s.store.DeleteMeal(ctx, id)
}

// CreateBowelMovement validates and creates a bowel movement record
func (s *HealthDataService) CreateBowelMovement(ctx context.Context, b *model.BowelMovement) error {
	if b.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.OccurredAt.IsZero() {
		b.OccurredAt = s.now()
	}

	return s.store.CreateBowelMovement(ctx, b)
}

// GetBowelMovements retrieves bowel movements within [start, end)
func (s *HealthDataService) GetBowelMovements(ctx context.Context, recipientID string, start, end time.Time) ([]model.BowelMovement, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.store.FindBowelMovements(ctx, recipientID, start, end)
}

// DeleteBowelMovement deletes a bowel movement record
func (s *HealthDataService) DeleteBowelMovement(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("bowel movement ID is required")
	}
	return s.store.DeleteBowelMovement(ctx, id)
}

// CreateUrination validates and creates a urination record
func (s *HealthDataService) CreateUrination(ctx context.Context, u *model.Urination) error {
	if u.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if u.VolumeML != nil && *u.VolumeML < 0 {
		return fmt.Errorf("volume cannot be negative")
	}

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.OccurredAt.IsZero() {
		u.OccurredAt = s.now()
	}

	return s.store.CreateUrination(ctx, u)
}

// GetUrinationRecords retrieves urination records within [start, end)
func (s *HealthDataService) GetUrinationRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Urination, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.store.FindUrinationRecords(ctx, recipientID, start, end)
}

// DeleteUrination deletes a urination record
func (s *HealthDataService) DeleteUrination(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("urination record ID is required")
	}
	return s.store.DeleteUrination(ctx, id)
}

// CreateSleep validates and creates a sleep record
func (s *HealthDataService) CreateSleep(ctx context.Context, sl *model.Sleep) error {
	if sl.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if sl.StartedAt.IsZero() {
		return fmt.Errorf("sleep start time is required")
	}
	if sl.EndedAt != nil && sl.EndedAt.Before(sl.StartedAt) {
		return fmt.Errorf("sleep end time cannot be before start time")
	}

	if sl.ID == "" {
		sl.ID = uuid.New().String()
	}

	return s.store.CreateSleep(ctx, sl)
}

// GetSleepRecords retrieves sleep records within [start, end)
func (s *HealthDataService) GetSleepRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Sleep, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.store.FindSleepRecords(ctx, recipientID, start, end)
}

// DeleteSleep deletes a sleep record
func (s *HealthDataService) DeleteSleep(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("sleep record ID is required")
	}
	return s.store.DeleteSleep(ctx, id)
}

// CreateBloodPressure validates and creates a blood pressure reading
func (s *HealthDataService) CreateBloodPressure(ctx context.Context, bp *model.BloodPressure) error {
	if bp.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if bp.Systolic <= 0 || bp.Diastolic <= 0 {
		return fmt.Errorf("systolic and diastolic values must be positive")
	}
	if bp.Diastolic >= bp.Systolic {
		return fmt.Errorf("diastolic value must be below systolic")
	}

	if bp.ID == "" {
		bp.ID = uuid.New().String()
	}
	if bp.MeasuredAt.IsZero() {
		bp.MeasuredAt = s.now()
	}

	return s.store.CreateBloodPressure(ctx, bp)
}

// GetBloodPressureReadings retrieves readings within [start, end)
func (s *HealthDataService) GetBloodPressureReadings(ctx context.Context, recipientID string, start, end time.Time) ([]model.BloodPressure, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.store.FindBloodPressureReadings(ctx, recipientID, start, end)
}

// DeleteBloodPressure deletes a blood pressure reading
func (s *HealthDataService) DeleteBloodPressure(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("blood pressure reading ID is required")
	}
	return s.store.DeleteBloodPressure(ctx, id)
}

// CreateGlucose validates and creates a glucose reading
func (s *HealthDataService) CreateGlucose(ctx context.Context, g *model.Glucose) error {
	if g.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if g.Level <= 0 {
		return fmt.Errorf("glucose level must be positive")
	}

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.MeasuredAt.IsZero() {
		g.MeasuredAt = s.now()
	}

	return s.store.CreateGlucose(ctx, g)
}

// GetGlucoseReadings retrieves glucose readings within [start, end)
func (s *HealthDataService) GetGlucoseReadings(ctx context.Context, recipientID string, start, end time.Time) ([]model.Glucose, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.store.FindGlucoseReadings(ctx, recipientID, start, end)
}

// DeleteGlucose deletes a glucose reading
func (s *HealthDataService) DeleteGlucose(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("glucose reading ID is required")
	}
	return s.store.DeleteGlucose(ctx, id)
}

// CreateInsulin validates and creates an insulin dose record
func (s *HealthDataService) CreateInsulin(ctx context.Context, in *model.Insulin) error {
	if in.CareRecipientID == "" {
		return fmt.Errorf("care recipient ID is required")
	}
	if in.Units <= 0 {
		return fmt.Errorf("insulin units must be positive")
	}

	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.AdministeredAt.IsZero() {
		in.AdministeredAt = s.now()
	}

	return s.store.CreateInsulin(ctx, in)
}

// GetInsulinRecords retrieves insulin records within [start, end)
func (s *HealthDataService) GetInsulinRecords(ctx context.Context, recipientID string, start, end time.Time) ([]model.Insulin, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("care recipient ID is required")
	}
	return s.store.FindInsulinRecords(ctx, recipientID, start, end)
}

// DeleteInsulin deletes an insulin record
func (s *HealthDataService) DeleteInsulin(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("insulin record ID is required")
	}
	return s.store.DeleteInsulin(ctx, id)
}

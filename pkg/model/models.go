package model

import "time"

// CareRecipient represents a person being cared for
type CareRecipient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Medication represents a medication record with inventory counters
type Medication struct {
	ID               string    `json:"id"`
	CareRecipientID  string    `json:"care_recipient_id"`
	Name             string    `json:"name"`
	Dosage           string    `json:"dosage"`
	Instructions     *string   `json:"instructions,omitempty"`
	Icon             *string   `json:"icon,omitempty"`
	Color            *string   `json:"color,omitempty"`
	CurrentQuantity  *int      `json:"current_quantity,omitempty"`
	ReorderThreshold int       `json:"reorder_threshold"`
	DaysToReorder    int       `json:"days_to_reorder"`
	OriginalQuantity *int      `json:"original_quantity,omitempty"`
	RefillsRemaining int       `json:"refills_remaining"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TaperingStep is a date-bounded dose override used for gradually
// changing doses, e.g. steroid tapers. Dates are calendar day strings
// in "2006-01-02" form, inclusive on both ends.
type TaperingStep struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Quantity  string `json:"quantity"`
}

// MedicationSchedule is one recurrence rule belonging to a medication.
// Exactly one recurrence mode is effective: specific calendar days when
// SpecificDays is non-empty, otherwise weekly recurrence on DaysOfWeek,
// or "as needed" (PRN) when AsNeeded is set.
type MedicationSchedule struct {
	ID               string         `json:"id"`
	MedicationID     string         `json:"medication_id"`
	Time             string         `json:"time"` // "HH:MM", 24-hour
	DaysOfWeek       []int          `json:"days_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	SpecificDays     []string       `json:"specific_days,omitempty"` // "2006-01-02"
	AsNeeded         bool           `json:"as_needed"`
	Quantity         string         `json:"quantity"` // free text, e.g. "1 tablet"
	WithFood         bool           `json:"with_food"`
	Active           bool           `json:"active"`
	IsTapering       bool           `json:"is_tapering"`
	TaperingSchedule []TaperingStep `json:"tapering_schedule,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// MedicationLog records that a dose was taken at a point in time.
// ScheduleID links the log to the schedule it fulfills; nil means an
// unscheduled/manual log. Logs are immutable once created except by
// deletion (unmarking a dose).
type MedicationLog struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medication_id"`
	ScheduleID   *string   `json:"schedule_id,omitempty"`
	TakenAt      time.Time `json:"taken_at"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Appointment represents a scheduled appointment for a care recipient
type Appointment struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Title           string    `json:"title"`
	Location        *string   `json:"location,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Meal represents a logged meal
type Meal struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Type            string    `json:"type"` // breakfast, lunch, dinner, snack
	Food            string    `json:"food"`
	Notes           *string   `json:"notes,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// BowelMovement represents a logged bowel movement event
type BowelMovement struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Type            *string   `json:"type,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Urination represents a logged urination event
type Urination struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Color           *string   `json:"color,omitempty"`
	VolumeML        *int      `json:"volume_ml,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Sleep represents a sleep record
type Sleep struct {
	ID              string     `json:"id"`
	CareRecipientID string     `json:"care_recipient_id"`
	Quality         *string    `json:"quality,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// BloodPressure represents a blood pressure reading
type BloodPressure struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Systolic        int       `json:"systolic"`
	Diastolic       int       `json:"diastolic"`
	Pulse           *int      `json:"pulse,omitempty"`
	Oxygen          *int      `json:"oxygen,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	MeasuredAt      time.Time `json:"measured_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Glucose represents a blood glucose reading
type Glucose struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Level           float64   `json:"level"`
	ReadingType     *string   `json:"reading_type,omitempty"` // fasting, before_meal, after_meal, bedtime
	Notes           *string   `json:"notes,omitempty"`
	MeasuredAt      time.Time `json:"measured_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Insulin represents an administered insulin dose
type Insulin struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Units           float64   `json:"units"`
	InsulinType     *string   `json:"insulin_type,omitempty"`
	Site            *string   `json:"site,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	AdministeredAt  time.Time `json:"administered_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Note represents a free-form care note. Content may be encrypted at
// rest depending on configuration; the model always carries plaintext.
type Note struct {
	ID              string    `json:"id"`
	CareRecipientID string    `json:"care_recipient_id"`
	Title           *string   `json:"title,omitempty"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

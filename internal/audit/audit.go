package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OperationType represents the type of operation performed
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
)

// ResourceType represents the type of resource being changed
type ResourceType string

const (
	ResourceCareRecipient      ResourceType = "care_recipient"
	ResourceMedication         ResourceType = "medication"
	ResourceMedicationSchedule ResourceType = "medication_schedule"
	ResourceMedicationLog      ResourceType = "medication_log"
	ResourceAppointment        ResourceType = "appointment"
	ResourceNote               ResourceType = "note"
)

// Entry represents an audit log entry
type Entry struct {
	ID            string
	OperationType OperationType
	ResourceType  ResourceType
	ResourceID    string
	RecipientID   string
	Timestamp     time.Time
	Detail        string
}

// Logger writes audit entries for mutations of caregiving records.
// Failures are logged and swallowed; auditing must never block the
// operation it describes.
type Logger struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewLogger creates a new audit logger
func NewLogger(db *pgxpool.Pool, logger *zap.Logger) *Logger {
	return &Logger{
		db:     db,
		logger: logger,
	}
}

// Record writes one audit entry
func (l *Logger) Record(ctx context.Context, op OperationType, resource ResourceType, resourceID, recipientID, detail string) {
	query := `
		INSERT INTO audit_log (id, operation_type, resource_type, resource_id, care_recipient_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := l.db.Exec(ctx, query, uuid.New().String(), string(op), string(resource), resourceID, recipientID, detail)
	if err != nil {
		l.logger.Warn("failed to write audit entry",
			zap.Error(err),
			zap.String("operation", string(op)),
			zap.String("resource_type", string(resource)),
			zap.String("resource_id", resourceID),
		)
	}
}

// FindByRecipient retrieves audit entries for a care recipient, newest
// first, limited to the given count.
func (l *Logger) FindByRecipient(ctx context.Context, recipientID string, limit int) ([]Entry, error) {
	query := `
		SELECT id, operation_type, resource_type, resource_id, care_recipient_id, detail, created_at
		FROM audit_log
		WHERE care_recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := l.db.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OperationType, &e.ResourceType, &e.ResourceID, &e.RecipientID, &e.Detail, &e.Timestamp); err != nil {
			l.logger.Error("failed to scan audit entry", zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/audit"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/handler"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/pdf"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/repository"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/security"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
)

const schemaDDL = `
CREATE TABLE care_recipients (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE medications (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	name              TEXT NOT NULL,
	dosage            TEXT NOT NULL DEFAULT '',
	instructions      TEXT,
	icon              TEXT,
	color             TEXT,
	current_quantity  INTEGER,
	reorder_threshold INTEGER NOT NULL DEFAULT 0,
	days_to_reorder   INTEGER NOT NULL DEFAULT 7,
	original_quantity INTEGER,
	refills_remaining INTEGER NOT NULL DEFAULT 0,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE medication_schedules (
	id                TEXT PRIMARY KEY,
	medication_id     TEXT NOT NULL REFERENCES medications(id) ON DELETE CASCADE,
	time_of_day       TEXT NOT NULL DEFAULT '',
	days_of_week      INTEGER[],
	specific_days     TEXT[],
	as_needed         BOOLEAN NOT NULL DEFAULT FALSE,
	quantity          TEXT NOT NULL DEFAULT '',
	with_food         BOOLEAN NOT NULL DEFAULT FALSE,
	active            BOOLEAN NOT NULL DEFAULT TRUE,
	is_tapering       BOOLEAN NOT NULL DEFAULT FALSE,
	tapering_schedule JSONB,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE medication_logs (
	id            TEXT PRIMARY KEY,
	medication_id TEXT NOT NULL REFERENCES medications(id) ON DELETE CASCADE,
	schedule_id   TEXT REFERENCES medication_schedules(id) ON DELETE CASCADE,
	taken_at      TIMESTAMPTZ NOT NULL,
	notes         TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE appointments (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	title             TEXT NOT NULL,
	location          TEXT,
	notes             TEXT,
	starts_at         TIMESTAMPTZ NOT NULL,
	ends_at           TIMESTAMPTZ,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE meals (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	type              TEXT NOT NULL,
	food              TEXT NOT NULL,
	notes             TEXT,
	occurred_at       TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE bowel_movements (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	type              TEXT,
	notes             TEXT,
	occurred_at       TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE urination_records (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	color             TEXT,
	volume_ml         INTEGER,
	notes             TEXT,
	occurred_at       TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE sleep_records (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	quality           TEXT,
	notes             TEXT,
	started_at        TIMESTAMPTZ NOT NULL,
	ended_at          TIMESTAMPTZ,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE blood_pressure_readings (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	systolic          INTEGER NOT NULL,
	diastolic         INTEGER NOT NULL,
	pulse             INTEGER,
	oxygen            INTEGER,
	notes             TEXT,
	measured_at       TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE glucose_readings (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	level             DOUBLE PRECISION NOT NULL,
	reading_type      TEXT,
	notes             TEXT,
	measured_at       TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE insulin_records (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	units             DOUBLE PRECISION NOT NULL,
	insulin_type      TEXT,
	site              TEXT,
	notes             TEXT,
	administered_at   TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE notes (
	id                TEXT PRIMARY KEY,
	care_recipient_id TEXT NOT NULL REFERENCES care_recipients(id) ON DELETE CASCADE,
	title             TEXT,
	content           TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE audit_log (
	id                TEXT PRIMARY KEY,
	operation_type    TEXT NOT NULL,
	resource_type     TEXT NOT NULL,
	resource_id       TEXT NOT NULL,
	care_recipient_id TEXT NOT NULL,
	detail            TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// testEncryptionKey is a fixed 32-byte AES-256 key so integration tests
// exercise note encryption at rest.
const testEncryptionKey = "0123456789abcdef0123456789abcdef"

// setupTestDatabase starts a disposable PostgreSQL container, applies
// the schema and returns a connection pool plus a cleanup function.
func setupTestDatabase(t *testing.T, ctx context.Context) (*pgxpool.Pool, func()) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("compassion_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Should be able to start postgres container")

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Should be able to get connection string")

	db, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err, "Should be able to connect to database")

	err = db.Ping(ctx)
	require.NoError(t, err, "Should be able to ping database")

	_, err = db.Exec(ctx, schemaDDL)
	require.NoError(t, err, "Should be able to apply schema")

	cleanup := func() {
		db.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate postgres container: %v", err)
		}
	}

	return db, cleanup
}

// setupRouter wires the full application stack against the given pool
// and returns a router with all API routes registered.
func setupRouter(t *testing.T, db *pgxpool.Pool) *gin.Engine {
	logger := zap.NewNop()

	careRecipientRepo := repository.NewCareRecipientRepository(db, logger)
	medicationRepo := repository.NewMedicationRepository(db, logger)
	scheduleRepo := repository.NewScheduleRepository(db, logger)
	medicationLogRepo := repository.NewMedicationLogRepository(db, logger)
	dashboardRepo := repository.NewDashboardRepository(db, logger)
	healthDataRepo := repository.NewHealthDataRepository(db, logger)
	appointmentRepo := repository.NewAppointmentRepository(db, logger)
	noteRepo := repository.NewNoteRepository(db, logger)

	auditLogger := audit.NewLogger(db, logger)

	encryptor, err := security.NewEncryptor([]byte(testEncryptionKey))
	require.NoError(t, err, "Should be able to build the note encryptor")

	careRecipientService := service.NewCareRecipientService(careRecipientRepo, auditLogger, logger)
	medicationService := service.NewMedicationService(medicationRepo, scheduleRepo, medicationLogRepo, auditLogger, logger, nil)
	dashboardService := service.NewDashboardService(dashboardRepo, logger)
	healthDataService := service.NewHealthDataService(healthDataRepo, logger, nil)
	appointmentService := service.NewAppointmentService(appointmentRepo, auditLogger, logger)
	noteService := service.NewNoteService(noteRepo, encryptor, auditLogger, logger)
	inspirationService := service.NewInspirationService(nil, logger, nil)
	reportService := service.NewReportService(
		careRecipientRepo, medicationRepo, dashboardService,
		healthDataRepo, appointmentRepo, noteService,
		pdf.NewGenerator(logger), logger, nil,
	)

	careRecipientHandler := handler.NewCareRecipientHandler(careRecipientService, logger)
	medicationHandler := handler.NewMedicationHandler(medicationService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	healthDataHandler := handler.NewHealthDataHandler(healthDataService, logger)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	inspirationHandler := handler.NewInspirationHandler(inspirationService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/care-recipients", careRecipientHandler.List)
		v1.POST("/care-recipients", careRecipientHandler.Create)
		v1.GET("/care-recipients/:id", careRecipientHandler.Get)
		v1.PUT("/care-recipients/:id", careRecipientHandler.Update)
		v1.DELETE("/care-recipients/:id", careRecipientHandler.Delete)

		v1.GET("/care-recipients/:id/medications", medicationHandler.ListByRecipient)
		v1.GET("/care-recipients/:id/upcoming-doses", medicationHandler.UpcomingDoses)
		v1.GET("/care-recipients/:id/reorder-alerts", medicationHandler.ReorderAlerts)
		v1.GET("/care-recipients/:id/daily-summary", dashboardHandler.DailySummary)
		v1.GET("/care-recipients/:id/stats", dashboardHandler.Stats)

		v1.POST("/medications", medicationHandler.Create)
		v1.GET("/medications/:id", medicationHandler.Get)
		v1.PUT("/medications/:id", medicationHandler.Update)
		v1.DELETE("/medications/:id", medicationHandler.Delete)
		v1.GET("/medications/:id/schedules", medicationHandler.ListSchedules)
		v1.GET("/medications/:id/logs", medicationHandler.ListLogs)
		v1.POST("/medications/:id/refill", medicationHandler.Refill)
		v1.PUT("/medications/:id/inventory", medicationHandler.UpdateInventory)

		v1.POST("/medication-schedules", medicationHandler.CreateSchedule)
		v1.PUT("/medication-schedules/:id", medicationHandler.UpdateSchedule)
		v1.DELETE("/medication-schedules/:id", medicationHandler.DeleteSchedule)

		v1.POST("/medication-logs", medicationHandler.MarkDose)
		v1.POST("/medication-logs/unmark", medicationHandler.UnmarkDose)
		v1.DELETE("/medication-logs/:id", medicationHandler.DeleteLog)

		v1.GET("/care-recipients/:id/meals", healthDataHandler.ListMeals)
		v1.POST("/care-recipients/:id/meals", healthDataHandler.CreateMeal)
		v1.DELETE("/meals/:id", healthDataHandler.DeleteMeal)

		v1.GET("/care-recipients/:id/blood-pressure", healthDataHandler.ListBloodPressureReadings)
		v1.POST("/care-recipients/:id/blood-pressure", healthDataHandler.CreateBloodPressure)
		v1.DELETE("/blood-pressure/:id", healthDataHandler.DeleteBloodPressure)

		v1.GET("/care-recipients/:id/glucose", healthDataHandler.ListGlucoseReadings)
		v1.POST("/care-recipients/:id/glucose", healthDataHandler.CreateGlucose)
		v1.DELETE("/glucose/:id", healthDataHandler.DeleteGlucose)

		v1.GET("/care-recipients/:id/sleep", healthDataHandler.ListSleepRecords)
		v1.POST("/care-recipients/:id/sleep", healthDataHandler.CreateSleep)
		v1.DELETE("/sleep/:id", healthDataHandler.DeleteSleep)

		v1.GET("/care-recipients/:id/appointments", appointmentHandler.ListByRecipient)
		v1.POST("/care-recipients/:id/appointments", appointmentHandler.Create)
		v1.PUT("/appointments/:id", appointmentHandler.Update)
		v1.DELETE("/appointments/:id", appointmentHandler.Delete)

		v1.GET("/care-recipients/:id/notes", noteHandler.ListByRecipient)
		v1.POST("/care-recipients/:id/notes", noteHandler.Create)
		v1.GET("/notes/:id", noteHandler.Get)
		v1.PUT("/notes/:id", noteHandler.Update)
		v1.DELETE("/notes/:id", noteHandler.Delete)

		v1.GET("/inspiration", inspirationHandler.QuoteOfTheDay)
		v1.POST("/reports/care-summary", reportHandler.CareSummary)
	}

	return router
}

// doJSON performs a request with an optional JSON body and returns the
// recorder.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeJSON unmarshals a response body into out
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "Should be able to parse response: %s", w.Body.String())
}

// createCareRecipient creates a care recipient through the API and
// returns its ID.
func createCareRecipient(t *testing.T, router *gin.Engine, name string) string {
	w := doJSON(t, router, "POST", "/api/v1/care-recipients", map[string]any{"name": name})
	require.Equal(t, 201, w.Code, "Create care recipient should return 201: %s", w.Body.String())

	var created map[string]any
	decodeJSON(t, w, &created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id, "Care recipient ID should not be empty")
	return id
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/audit"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/config"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/handler"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/middleware"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/pdf"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/quote"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/repository"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/security"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/api"
)

var (
	logger *zap.Logger
	pool   *pgxpool.Pool
	cfg    *config.Config
)

func main() {
	// Load configuration
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database connection pool with pgx
	pool, err = pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Test database connection
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to database")

	// Validate the embedded OpenAPI document up front
	swagger, err := api.GetSwagger()
	if err != nil {
		logger.Fatal("Failed to load OpenAPI document", zap.Error(err))
	}

	// Optional quote generation; falls back to the built-in rotation
	// when no API key is configured.
	var quoteGenerator service.QuoteGenerator
	if cfg.Quotes.OpenAIAPIKey != "" {
		generator, err := quote.NewOpenAIGenerator(cfg.Quotes.OpenAIAPIKey, cfg.Quotes.OpenAIModel, logger)
		if err != nil {
			logger.Fatal("Failed to initialize quote generator", zap.Error(err))
		}
		quoteGenerator = generator
		logger.Info("Quote generation enabled", zap.String("model", cfg.Quotes.OpenAIModel))
	}

	// Optional note encryption at rest
	var noteCipher service.NoteCipher
	if cfg.Security.NoteEncryptionKey != "" {
		encryptor, err := security.NewEncryptor([]byte(cfg.Security.NoteEncryptionKey))
		if err != nil {
			logger.Fatal("Failed to initialize note encryption", zap.Error(err))
		}
		noteCipher = encryptor
		logger.Info("Note encryption enabled")
	}

	// Initialize repositories
	careRecipientRepo := repository.NewCareRecipientRepository(pool, logger)
	medicationRepo := repository.NewMedicationRepository(pool, logger)
	scheduleRepo := repository.NewScheduleRepository(pool, logger)
	medicationLogRepo := repository.NewMedicationLogRepository(pool, logger)
	dashboardRepo := repository.NewDashboardRepository(pool, logger)
	healthDataRepo := repository.NewHealthDataRepository(pool, logger)
	appointmentRepo := repository.NewAppointmentRepository(pool, logger)
	noteRepo := repository.NewNoteRepository(pool, logger)

	// Initialize audit trail
	auditLogger := audit.NewLogger(pool, logger)

	// Initialize services
	careRecipientService := service.NewCareRecipientService(careRecipientRepo, auditLogger, logger)
	medicationService := service.NewMedicationService(
		medicationRepo,
		scheduleRepo,
		medicationLogRepo,
		auditLogger,
		logger,
		nil,
	)
	dashboardService := service.NewDashboardService(dashboardRepo, logger)
	healthDataService := service.NewHealthDataService(healthDataRepo, logger, nil)
	appointmentService := service.NewAppointmentService(appointmentRepo, auditLogger, logger)
	noteService := service.NewNoteService(noteRepo, noteCipher, auditLogger, logger)
	inspirationService := service.NewInspirationService(quoteGenerator, logger, nil)

	// Initialize PDF generator and report assembly
	pdfGenerator := pdf.NewGenerator(logger)
	reportService := service.NewReportService(
		careRecipientRepo,
		medicationRepo,
		dashboardService,
		healthDataRepo,
		appointmentRepo,
		noteService,
		pdfGenerator,
		logger,
		nil,
	)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(pool, logger)
	careRecipientHandler := handler.NewCareRecipientHandler(careRecipientService, logger)
	medicationHandler := handler.NewMedicationHandler(medicationService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	healthDataHandler := handler.NewHealthDataHandler(healthDataService, logger)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	inspirationHandler := handler.NewInspirationHandler(inspirationService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Register routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)
		v1.GET("/openapi.json", func(c *gin.Context) {
			c.JSON(http.StatusOK, swagger)
		})

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

		v1.GET("/care-recipients/:id/bowel-movements", healthDataHandler.ListBowelMovements)
		v1.POST("/care-recipients/:id/bowel-movements", healthDataHandler.CreateBowelMovement)
		v1.DELETE("/bowel-movements/:id", healthDataHandler.DeleteBowelMovement)

		v1.GET("/care-recipients/:id/urination", healthDataHandler.ListUrinationRecords)
		v1.POST("/care-recipients/:id/urination", healthDataHandler.CreateUrination)
		v1.DELETE("/urination/:id", healthDataHandler.DeleteUrination)

		v1.GET("/care-recipients/:id/sleep", healthDataHandler.ListSleepRecords)
		v1.POST("/care-recipients/:id/sleep", healthDataHandler.CreateSleep)
		v1.DELETE("/sleep/:id", healthDataHandler.DeleteSleep)

		v1.GET("/care-recipients/:id/blood-pressure", healthDataHandler.ListBloodPressureReadings)
		v1.POST("/care-recipients/:id/blood-pressure", healthDataHandler.CreateBloodPressure)
		v1.DELETE("/blood-pressure/:id", healthDataHandler.DeleteBloodPressure)

		v1.GET("/care-recipients/:id/glucose", healthDataHandler.ListGlucoseReadings)
		v1.POST("/care-recipients/:id/glucose", healthDataHandler.CreateGlucose)
		v1.DELETE("/glucose/:id", healthDataHandler.DeleteGlucose)

		v1.GET("/care-recipients/:id/insulin", healthDataHandler.ListInsulinRecords)
		v1.POST("/care-recipients/:id/insulin", healthDataHandler.CreateInsulin)
		v1.DELETE("/insulin/:id", healthDataHandler.DeleteInsulin)

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

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close database connections
	pool.Close()

	logger.Info("Server exited")
}

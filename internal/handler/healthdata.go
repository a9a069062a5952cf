package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/service"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// HealthDataHandler implements the flat health event API endpoints:
// meals, bowel movements, urination, sleep, blood pressure, glucose
// and insulin.
type HealthDataHandler struct {
	service *service.HealthDataService
	logger  *zap.Logger
}

// NewHealthDataHandler creates a new HealthDataHandler
func NewHealthDataHandler(service *service.HealthDataService, logger *zap.Logger) *HealthDataHandler {
	return &HealthDataHandler{
		service: service,
		logger:  logger,
	}
}

// CreateMeal creates a meal record
func (h *HealthDataHandler) CreateMeal(c *gin.Context) {
	var meal model.Meal
	if err := c.ShouldBindJSON(&meal); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	meal.CareRecipientID = c.Param("id")

	if err := h.service.CreateMeal(c.Request.Context(), &meal); err != nil {
		badRequest(c, "Failed to create meal", err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// ListMeals returns meals within a date range
func (h *HealthDataHandler) ListMeals(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	meals, err := h.service.GetMeals(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list meals", err)
		return
	}

	if meals == nil {
		meals = []model.Meal{}
	}
	c.JSON(http.StatusOK, meals)
}

// DeleteMeal deletes a meal record
func (h *HealthDataHandler) DeleteMeal(c *gin.Context) {
	if err := h.service.DeleteMeal(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete meal", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateBowelMovement creates a bowel movement record
func (h *HealthDataHandler) CreateBowelMovement(c *gin.Context) {
	var bm model.BowelMovement
	if err := c.ShouldBindJSON(&bm); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	bm.CareRecipientID = c.Param("id")

	if err := h.service.CreateBowelMovement(c.Request.Context(), &bm); err != nil {
		badRequest(c, "Failed to create bowel movement", err)
		return
	}

	c.JSON(http.StatusCreated, bm)
}

// ListBowelMovements returns bowel movements within a date range
func (h *HealthDataHandler) ListBowelMovements(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	records, err := h.service.GetBowelMovements(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list bowel movements", err)
		return
	}

	if records == nil {
		records = []model.BowelMovement{}
	}
	c.JSON(http.StatusOK, records)
}

// DeleteBowelMovement deletes a bowel movement record
func (h *HealthDataHandler) DeleteBowelMovement(c *gin.Context) {
	if err := h.service.DeleteBowelMovement(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete bowel movement", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateUrination creates a urination record
func (h *HealthDataHandler) CreateUrination(c *gin.Context) {
	var ur model.Urination
	if err := c.ShouldBindJSON(&ur); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	ur.CareRecipientID = c.Param("id")

	if err := h.service.CreateUrination(c.Request.Context(), &ur); err != nil {
		badRequest(c, "Failed to create urination record", err)
		return
	}

	c.JSON(http.StatusCreated, ur)
}

// ListUrinationRecords returns urination records within a date range
func (h *HealthDataHandler) ListUrinationRecords(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	records, err := h.service.GetUrinationRecords(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list urination records", err)
		return
	}

	if records == nil {
		records = []model.Urination{}
	}
	c.JSON(http.StatusOK, records)
}

// DeleteUrination deletes a urination record
func (h *HealthDataHandler) DeleteUrination(c *gin.Context) {
	if err := h.service.DeleteUrination(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete urination record", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateSleep creates a sleep record
func (h *HealthDataHandler) CreateSleep(c *gin.Context) {
	var sl model.Sleep
	if err := c.ShouldBindJSON(&sl); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	sl.CareRecipientID = c.Param("id")

	if err := h.service.CreateSleep(c.Request.Context(), &sl); err != nil {
		badRequest(c, "Failed to create sleep record", err)
		return
	}

	c.JSON(http.StatusCreated, sl)
}

// ListSleepRecords returns sleep records within a date range
func (h *HealthDataHandler) ListSleepRecords(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	records, err := h.service.GetSleepRecords(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list sleep records", err)
		return
	}

	if records == nil {
		records = []model.Sleep{}
	}
	c.JSON(http.StatusOK, records)
}

// DeleteSleep deletes a sleep record
func (h *HealthDataHandler) DeleteSleep(c *gin.Context) {
	if err := h.service.DeleteSleep(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete sleep record", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateBloodPressure creates a blood pressure reading
func (h *HealthDataHandler) CreateBloodPressure(c *gin.Context) {
	var bp model.BloodPressure
	if err := c.ShouldBindJSON(&bp); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	bp.CareRecipientID = c.Param("id")

	if err := h.service.CreateBloodPressure(c.Request.Context(), &bp); err != nil {
		badRequest(c, "Failed to create blood pressure reading", err)
		return
	}

	c.JSON(http.StatusCreated, bp)
}

// ListBloodPressureReadings returns readings within a date range
func (h *HealthDataHandler) ListBloodPressureReadings(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	readings, err := h.service.GetBloodPressureReadings(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list blood pressure readings", err)
		return
	}

	if readings == nil {
		readings = []model.BloodPressure{}
	}
	c.JSON(http.StatusOK, readings)
}

// DeleteBloodPressure deletes a blood pressure reading
func (h *HealthDataHandler) DeleteBloodPressure(c *gin.Context) {
	if err := h.service.DeleteBloodPressure(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete blood pressure reading", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateGlucose creates a glucose reading
func (h *HealthDataHandler) CreateGlucose(c *gin.Context) {
	var g model.Glucose
	if err := c.ShouldBindJSON(&g); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	g.CareRecipientID = c.Param("id")

	if err := h.service.CreateGlucose(c.Request.Context(), &g); err != nil {
		badRequest(c, "Failed to create glucose reading", err)
		return
	}

	c.JSON(http.StatusCreated, g)
}

// ListGlucoseReadings returns glucose readings within a date range
func (h *HealthDataHandler) ListGlucoseReadings(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	readings, err := h.service.GetGlucoseReadings(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list glucose readings", err)
		return
	}

	if readings == nil {
		readings = []model.Glucose{}
	}
	c.JSON(http.StatusOK, readings)
}

// DeleteGlucose deletes a glucose reading
func (h *HealthDataHandler) DeleteGlucose(c *gin.Context) {
	if err := h.service.DeleteGlucose(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete glucose reading", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateInsulin creates an insulin dose record
func (h *HealthDataHandler) CreateInsulin(c *gin.Context) {
	var in model.Insulin
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	in.CareRecipientID = c.Param("id")

	if err := h.service.CreateInsulin(c.Request.Context(), &in); err != nil {
		badRequest(c, "Failed to create insulin record", err)
		return
	}

	c.JSON(http.StatusCreated, in)
}

// ListInsulinRecords returns insulin records within a date range
func (h *HealthDataHandler) ListInsulinRecords(c *gin.Context) {
	start, end, err := dateRangeFromQuery(c, time.Now())
	if err != nil {
		badRequest(c, "Invalid date range", err)
		return
	}

	records, err := h.service.GetInsulinRecords(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		serviceError(c, "Failed to list insulin records", err)
		return
	}

	if records == nil {
		records = []model.Insulin{}
	}
	c.JSON(http.StatusOK, records)
}

// DeleteInsulin deletes an insulin record
func (h *HealthDataHandler) DeleteInsulin(c *gin.Context) {
	if err := h.service.DeleteInsulin(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, "Failed to delete insulin record", err)
		return
	}

	c.Status(http.StatusNoContent)
}

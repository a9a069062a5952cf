package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// Generator renders care summary reports as PDF documents
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new Generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// AdherenceDay is one day of medication adherence in the report
type AdherenceDay struct {
	Date      string
	Completed int
	Total     int
	Progress  int
}

// ReportData contains everything needed to render a care summary
type ReportData struct {
	RecipientName string
	DateRange     string
	GeneratedAt   string
	Medications   []model.Medication
	Adherence     []AdherenceDay
	BloodPressure []model.BloodPressure
	Glucose       []model.Glucose
	Meals         []model.Meal
	Appointments  []model.Appointment
	Notes         []model.Note
}

// Generate renders a care summary PDF from the provided data
func (g *Generator) Generate(data *ReportData) ([]byte, error) {
	g.logger.Info("generating care summary PDF",
		zap.String("recipient_name", data.RecipientName),
		zap.String("date_range", data.DateRange),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, data)
	g.addMedicationList(pdf, data.Medications)
	g.addAdherence(pdf, data.Adherence)
	g.addBloodPressure(pdf, data.BloodPressure)
	g.addGlucose(pdf, data.Glucose)
	g.addMeals(pdf, data.Meals)
	g.addAppointments(pdf, data.Appointments)
	g.addNotes(pdf, data.Notes)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("care summary PDF generated",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func (g *Generator) addTitle(pdf *gofpdf.Fpdf, data *ReportData) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Care Summary", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Care recipient: %s", data.RecipientName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s", data.DateRange), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", data.GeneratedAt), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

func (g *Generator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

func (g *Generator) addMedicationList(pdf *gofpdf.Fpdf, medications []model.Medication) {
	g.addSectionHeader(pdf, "Medications")

	if len(medications) == 0 {
		pdf.CellFormat(0, 8, "No medications on file.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, med := range medications {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, med.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Dosage: %s", med.Dosage), "", 1, "L", false, 0, "")
		if med.Instructions != nil && *med.Instructions != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Instructions: %s", *med.Instructions), "", 1, "L", false, 0, "")
		}
		if med.CurrentQuantity != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Remaining: %d (reorder at %d)", *med.CurrentQuantity, med.ReorderThreshold), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
	pdf.Ln(5)
}

func (g *Generator) addAdherence(pdf *gofpdf.Fpdf, days []AdherenceDay) {
	g.addSectionHeader(pdf, "Medication Adherence")

	if len(days) == 0 {
		pdf.CellFormat(0, 8, "No adherence data for this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	var sum int
	for _, day := range days {
		sum += day.Progress
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: %d of %d medications complete (%d%%)",
			day.Date, day.Completed, day.Total, day.Progress), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Average daily adherence: %d%%", sum/len(days)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.Ln(5)
}

func (g *Generator) addBloodPressure(pdf *gofpdf.Fpdf, readings []model.BloodPressure) {
	g.addSectionHeader(pdf, "Blood Pressure")

	if len(readings) == 0 {
		pdf.CellFormat(0, 8, "No blood pressure readings recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	var totalSystolic, totalDiastolic int
	for _, reading := range readings {
		totalSystolic += reading.Systolic
		totalDiastolic += reading.Diastolic
	}

	count := len(readings)
	pdf.CellFormat(0, 6, fmt.Sprintf("Average: %d/%d mmHg over %d readings",
		totalSystolic/count, totalDiastolic/count, count), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	maxReadings := 10
	if count < maxReadings {
		maxReadings = count
	}
	for i := 0; i < maxReadings; i++ {
		reading := readings[i]
		line := fmt.Sprintf("%s: %d/%d mmHg",
			reading.MeasuredAt.Format("2006-01-02 15:04"), reading.Systolic, reading.Diastolic)
		if reading.Pulse != nil {
			line += fmt.Sprintf(", pulse %d bpm", *reading.Pulse)
		}
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addGlucose(pdf *gofpdf.Fpdf, readings []model.Glucose) {
	g.addSectionHeader(pdf, "Glucose")

	if len(readings) == 0 {
		pdf.CellFormat(0, 8, "No glucose readings recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, reading := range readings {
		line := fmt.Sprintf("%s: %.1f", reading.MeasuredAt.Format("2006-01-02 15:04"), reading.Level)
		if reading.ReadingType != nil {
			line += fmt.Sprintf(" (%s)", *reading.ReadingType)
		}
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addMeals(pdf *gofpdf.Fpdf, meals []model.Meal) {
	g.addSectionHeader(pdf, "Meals")

	if len(meals) == 0 {
		pdf.CellFormat(0, 8, "No meals recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, meal := range meals {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s  %s: %s",
			meal.OccurredAt.Format("2006-01-02"), meal.Type, meal.Food), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addAppointments(pdf *gofpdf.Fpdf, appointments []model.Appointment) {
	g.addSectionHeader(pdf, "Appointments")

	if len(appointments) == 0 {
		pdf.CellFormat(0, 8, "No appointments in this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, a := range appointments {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s  %s", a.StartsAt.Format("2006-01-02 15:04"), a.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		if a.Location != nil && *a.Location != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Location: %s", *a.Location), "", 1, "L", false, 0, "")
		}
		if a.Notes != nil && *a.Notes != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Notes: %s", *a.Notes), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

func (g *Generator) addNotes(pdf *gofpdf.Fpdf, notes []model.Note) {
	g.addSectionHeader(pdf, "Care Notes")

	if len(notes) == 0 {
		pdf.CellFormat(0, 8, "No notes recorded in this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, n := range notes {
		pdf.SetFont("Arial", "B", 10)
		header := n.CreatedAt.Format("2006-01-02")
		if n.Title != nil && *n.Title != "" {
			header += "  " + *n.Title
		}
		pdf.CellFormat(0, 6, header, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, n.Content, "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

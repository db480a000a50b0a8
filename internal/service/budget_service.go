package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/pkg/export"
)

// BudgetService aggregates trip spend and renders budget exports.
type BudgetService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewBudgetService constructs the service.
func NewBudgetService(logger *zap.Logger) *BudgetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BudgetService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Summarize recomputes trip spend from the current items. Per-day spend
// divides by the count of days holding at least one item, so empty days do
// not dilute the average. Traveler count floors at one.
func (s *BudgetService) Summarize(trip *models.Trip) models.BudgetSummary {
	summary := models.BudgetSummary{
		Budget:   trip.Budget,
		DaySpend: make([]float64, len(trip.Days)),
	}

	for i, day := range trip.Days {
		spend := day.TotalSpend()
		summary.DaySpend[i] = spend
		summary.Total += spend
		if len(day.Items) > 0 {
			summary.ActiveDays++
		}
	}

	summary.Remaining = trip.Budget - summary.Total

	travelers := trip.Travelers
	if travelers < 1 {
		travelers = 1
	}
	summary.Travelers = travelers
	summary.PerPerson = summary.Total / float64(travelers)

	if summary.ActiveDays > 0 {
		summary.PerDay = summary.Total / float64(summary.ActiveDays)
	}

	return summary
}

func (s *BudgetService) dataset(trip *models.Trip, summary models.BudgetSummary) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Day", "Date", "Items", "Spend"},
	}
	for i, day := range trip.Days {
		data.Rows = append(data.Rows, map[string]string{
			"Day":   fmt.Sprintf("%d", day.Day),
			"Date":  day.Date,
			"Items": fmt.Sprintf("%d", len(day.Items)),
			"Spend": fmt.Sprintf("%.2f", summary.DaySpend[i]),
		})
	}
	data.Rows = append(data.Rows, map[string]string{
		"Day":   "",
		"Date":  "Total",
		"Items": "",
		"Spend": fmt.Sprintf("%.2f", summary.Total),
	})
	return data
}

// ExportCSV renders the per-day spend table as CSV bytes.
func (s *BudgetService) ExportCSV(trip *models.Trip) ([]byte, error) {
	summary := s.Summarize(trip)
	payload, err := s.csv.Render(s.dataset(trip, summary))
	if err != nil {
		return nil, fmt.Errorf("render budget csv: %w", err)
	}
	return payload, nil
}

// ExportPDF renders the per-day spend table as a PDF document.
func (s *BudgetService) ExportPDF(trip *models.Trip) ([]byte, error) {
	summary := s.Summarize(trip)
	payload, err := s.pdf.Render(s.dataset(trip, summary), trip.Name+" budget")
	if err != nil {
		return nil, fmt.Errorf("render budget pdf: %w", err)
	}
	return payload, nil
}

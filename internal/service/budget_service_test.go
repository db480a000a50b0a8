package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wayplan-api/internal/models"
)

func budgetFixture() *models.Trip {
	return &models.Trip{
		ID:        "trip-1",
		Name:      "Paris",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Travelers: 2,
		Budget:    500,
		Days: []models.TripDay{
			{Day: 1, Date: "Jun 1", Items: []models.TripItem{
				{ID: "a", Title: "Hotel", Cost: floatPtr(150)},
				{ID: "b", Title: "Walk", Cost: floatPtr(0)},
			}},
			{Day: 2, Date: "Jun 2", Items: []models.TripItem{
				{ID: "c", Title: "Museum", Cost: floatPtr(25)},
				{ID: "d", Title: "Lunch", Cost: floatPtr(20)},
			}},
			{Day: 3, Date: "Jun 3"},
		},
	}
}

func TestSummarizeSkipsEmptyDays(t *testing.T) {
	svc := NewBudgetService(nil)

	summary := svc.Summarize(budgetFixture())

	assert.Equal(t, 195.0, summary.Total)
	assert.Equal(t, 2, summary.ActiveDays, "the empty third day is excluded")
	assert.Equal(t, 97.5, summary.PerDay)
	assert.Equal(t, 97.5, summary.PerPerson)
	assert.Equal(t, 305.0, summary.Remaining)
	assert.Equal(t, []float64{150, 45, 0}, summary.DaySpend)
}

func TestSummarizeMissingCostCountsAsZero(t *testing.T) {
	svc := NewBudgetService(nil)

	trip := &models.Trip{Travelers: 1, Days: []models.TripDay{
		{Day: 1, Items: []models.TripItem{{ID: "a", Title: "Free walk"}}},
	}}

	summary := svc.Summarize(trip)
	assert.Equal(t, 0.0, summary.Total)
	assert.Equal(t, 1, summary.ActiveDays)
}

func TestSummarizeFloorsTravelers(t *testing.T) {
	svc := NewBudgetService(nil)

	trip := &models.Trip{Travelers: 0, Days: []models.TripDay{
		{Day: 1, Items: []models.TripItem{{ID: "a", Cost: floatPtr(80)}}},
	}}

	summary := svc.Summarize(trip)
	assert.Equal(t, 1, summary.Travelers)
	assert.Equal(t, 80.0, summary.PerPerson)
}

func TestExportCSVContainsDayRowsAndTotal(t *testing.T) {
	svc := NewBudgetService(nil)

	payload, err := svc.ExportCSV(budgetFixture())
	require.NoError(t, err)

	body := string(payload)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 5, "header, three days, total")
	assert.Equal(t, "Day,Date,Items,Spend", lines[0])
	assert.Contains(t, lines[1], "150.00")
	assert.Contains(t, lines[4], "Total")
	assert.Contains(t, lines[4], "195.00")
}

func TestExportPDFProducesDocument(t *testing.T) {
	svc := NewBudgetService(nil)

	payload, err := svc.ExportPDF(budgetFixture())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wayplan-api/internal/models"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/response"
)

type budgetService interface {
	Summarize(trip *models.Trip) models.BudgetSummary
	ExportCSV(trip *models.Trip) ([]byte, error)
	ExportPDF(trip *models.Trip) ([]byte, error)
}

type tripReader interface {
	Get(ctx context.Context, id string) (*models.Trip, error)
}

type daysReader interface {
	Days(ctx context.Context, tripID string) ([]models.TripDay, error)
}

// BudgetHandler exposes spend summaries and exports.
type BudgetHandler struct {
	service   budgetService
	trips     tripReader
	itinerary daysReader
}

// NewBudgetHandler builds a new handler.
func NewBudgetHandler(service budgetService, trips tripReader, itinerary daysReader) *BudgetHandler {
	return &BudgetHandler{service: service, trips: trips, itinerary: itinerary}
}

// currentTrip overlays the live itinerary onto the trip metadata so
// summaries reflect edits that have not been flushed to the database yet.
func (h *BudgetHandler) currentTrip(c *gin.Context) (*models.Trip, bool) {
	trip, err := h.trips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	days, err := h.itinerary.Days(c.Request.Context(), trip.ID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	trip.Days = days
	return trip, true
}

// Summary godoc
// @Summary Budget summary for a trip
// @Tags Budget
// @Produce json
// @Param id path string true "Trip id"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/budget [get]
func (h *BudgetHandler) Summary(c *gin.Context) {
	trip, ok := h.currentTrip(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, h.service.Summarize(trip), nil)
}

// Export godoc
// @Summary Export the budget breakdown
// @Tags Budget
// @Produce octet-stream
// @Param id path string true "Trip id"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /trips/{id}/budget/export [get]
func (h *BudgetHandler) Export(c *gin.Context) {
	trip, ok := h.currentTrip(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, err = h.service.ExportCSV(trip)
		contentType = "text/csv"
	case "pdf":
		payload, err = h.service.ExportPDF(trip)
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrUnsupported, fmt.Sprintf("unsupported export format %q", format)))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-budget.%s", trip.ID, format))
	c.Data(http.StatusOK, contentType, payload)
}

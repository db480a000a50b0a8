package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/pkg/response"
)

type calendarService interface {
	Events(days []models.TripDay, tripStart time.Time) []models.CalendarExportEvent
	RenderICS(trip *models.Trip) ([]byte, error)
}

// CalendarHandler exposes the itinerary as calendar events and iCalendar
// downloads.
type CalendarHandler struct {
	service   calendarService
	trips     tripReader
	itinerary daysReader
}

// NewCalendarHandler builds a new handler.
func NewCalendarHandler(service calendarService, trips tripReader, itinerary daysReader) *CalendarHandler {
	return &CalendarHandler{service: service, trips: trips, itinerary: itinerary}
}

func (h *CalendarHandler) currentTrip(c *gin.Context) (*models.Trip, bool) {
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

// Events godoc
// @Summary Flatten the itinerary into dated calendar events
// @Tags Calendar
// @Produce json
// @Param id path string true "Trip id"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/calendar [get]
func (h *CalendarHandler) Events(c *gin.Context) {
	trip, ok := h.currentTrip(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, h.service.Events(trip.Days, trip.StartDate), nil)
}

// ICS godoc
// @Summary Download the itinerary as an iCalendar file
// @Tags Calendar
// @Produce plain
// @Param id path string true "Trip id"
// @Success 200 {file} binary
// @Router /trips/{id}/calendar.ics [get]
func (h *CalendarHandler) ICS(c *gin.Context) {
	trip, ok := h.currentTrip(c)
	if !ok {
		return
	}
	payload, err := h.service.RenderICS(trip)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.ics", trip.ID))
	c.Data(http.StatusOK, "text/calendar", payload)
}

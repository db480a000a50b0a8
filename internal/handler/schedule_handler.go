package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/internal/service"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/response"
)

type scheduleEngine interface {
	CheckConflicts(days []models.TripDay) []models.Conflict
	Optimize(days []models.TripDay) []models.TripDay
	AutoSchedule(day models.TripDay) models.TripDay
	DayState(day models.TripDay) models.DayScheduleState
	FindGaps(day models.TripDay, minGap int) []models.ScheduleGap
	SummarizeRoute(day models.TripDay) service.RouteSummary
}

type itineraryAccessor interface {
	Days(ctx context.Context, tripID string) ([]models.TripDay, error)
	Replace(ctx context.Context, tripID string, days []models.TripDay) error
}

// ScheduleHandler exposes the consistency-engine endpoints: conflicts,
// proximity optimization, auto scheduling, day state, gaps and routes.
type ScheduleHandler struct {
	engine    scheduleEngine
	itinerary itineraryAccessor
	minGap    int
}

// NewScheduleHandler builds a new handler. minGap is the default window, in
// minutes, below which free time between items is ignored.
func NewScheduleHandler(engine scheduleEngine, itinerary itineraryAccessor, minGap int) *ScheduleHandler {
	if minGap <= 0 {
		minGap = 60
	}
	return &ScheduleHandler{engine: engine, itinerary: itinerary, minGap: minGap}
}

func (h *ScheduleHandler) dayFor(c *gin.Context) (models.TripDay, int, bool) {
	day, ok := dayParam(c)
	if !ok {
		return models.TripDay{}, 0, false
	}
	days, err := h.itinerary.Days(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return models.TripDay{}, 0, false
	}
	if day > len(days) {
		response.Error(c, appErrors.ErrDayNotFound)
		return models.TripDay{}, 0, false
	}
	return days[day-1], day, true
}

// Conflicts godoc
// @Summary List overlapping scheduled items
// @Tags Schedule
// @Produce json
// @Param id path string true "Trip id"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/schedule/conflicts [get]
func (h *ScheduleHandler) Conflicts(c *gin.Context) {
	days, err := h.itinerary.Days(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	conflicts := h.engine.CheckConflicts(days)
	response.JSON(c, http.StatusOK, dto.ConflictsResponse{Conflicts: conflicts, Count: len(conflicts)}, nil)
}

// Optimize godoc
// @Summary Reorder each day's items by proximity
// @Tags Schedule
// @Produce json
// @Param id path string true "Trip id"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/schedule/optimize [post]
func (h *ScheduleHandler) Optimize(c *gin.Context) {
	tripID := c.Param("id")
	days, err := h.itinerary.Days(c.Request.Context(), tripID)
	if err != nil {
		response.Error(c, err)
		return
	}
	optimized := h.engine.Optimize(days)
	if err := h.itinerary.Replace(c.Request.Context(), tripID, optimized); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, optimized, nil)
}

// AutoSchedule godoc
// @Summary Assign sequential times to one day's items
// @Tags Schedule
// @Produce json
// @Param id path string true "Trip id"
// @Param day path int true "Day number"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/schedule/days/{day}/auto [post]
func (h *ScheduleHandler) AutoSchedule(c *gin.Context) {
	number, ok := dayParam(c)
	if !ok {
		return
	}
	tripID := c.Param("id")

	// Single snapshot read; validating and writing against different
	// snapshots would race concurrent day removals.
	days, err := h.itinerary.Days(c.Request.Context(), tripID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if number > len(days) {
		response.Error(c, appErrors.ErrDayNotFound)
		return
	}

	scheduled := h.engine.AutoSchedule(days[number-1])
	days[number-1] = scheduled
	if err := h.itinerary.Replace(c.Request.Context(), tripID, days); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scheduled, nil)
}

// DayState godoc
// @Summary Report the scheduling state of a day
// @Tags Schedule
// @Produce json
// @Param id path string true "Trip id"
// @Param day path int true "Day number"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/schedule/days/{day}/state [get]
func (h *ScheduleHandler) DayState(c *gin.Context) {
	day, number, ok := h.dayFor(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, dto.DayStateResponse{Day: number, State: h.engine.DayState(day)}, nil)
}

// Gaps godoc
// @Summary List free windows in a day
// @Tags Schedule
// @Produce json
// @Param id path string true "Trip id"
// @Param day path int true "Day number"
// @Param minGap query int false "Minimum gap in minutes"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/schedule/days/{day}/gaps [get]
func (h *ScheduleHandler) Gaps(c *gin.Context) {
	day, number, ok := h.dayFor(c)
	if !ok {
		return
	}
	minGap := h.minGap
	if raw := c.Query("minGap"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "minGap must be a non-negative integer"))
			return
		}
		minGap = parsed
	}
	response.JSON(c, http.StatusOK, dto.GapsResponse{Day: number, Gaps: h.engine.FindGaps(day, minGap)}, nil)
}

// Route godoc
// @Summary Estimate travel effort across a day's located items
// @Tags Schedule
// @Produce json
// @Param id path string true "Trip id"
// @Param day path int true "Day number"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/schedule/days/{day}/route [get]
func (h *ScheduleHandler) Route(c *gin.Context) {
	day, number, ok := h.dayFor(c)
	if !ok {
		return
	}
	summary := h.engine.SummarizeRoute(day)
	response.JSON(c, http.StatusOK, dto.RouteSummaryResponse{
		Day:            number,
		Stops:          summary.Stops,
		Areas:          summary.Areas,
		DistanceKm:     summary.DistanceKm,
		WalkingMinutes: summary.WalkingMinutes,
		DrivingMinutes: summary.DrivingMinutes,
	}, nil)
}

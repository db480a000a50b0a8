package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/response"
)

type itineraryService interface {
	Days(ctx context.Context, tripID string) ([]models.TripDay, error)
	AddItem(ctx context.Context, tripID string, req dto.AddItemRequest) (*models.TripItem, error)
	UpdateItem(ctx context.Context, tripID string, day int, itemID string, req dto.UpdateItemRequest) error
	DeleteItem(ctx context.Context, tripID string, day int, itemID string) error
	MoveItem(ctx context.Context, tripID string, fromDay int, itemID string, req dto.MoveItemRequest) error
	AddDay(ctx context.Context, tripID string) (*models.TripDay, error)
	RemoveDay(ctx context.Context, tripID string, day int) error
}

// ItineraryHandler exposes day and item mutation endpoints.
type ItineraryHandler struct {
	service itineraryService
}

// NewItineraryHandler builds a new handler.
func NewItineraryHandler(service itineraryService) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day must be a positive integer"))
		return 0, false
	}
	return day, true
}

// Days godoc
// @Summary Get the day-by-day itinerary
// @Tags Itinerary
// @Produce json
// @Param id path string true "Trip id"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/days [get]
func (h *ItineraryHandler) Days(c *gin.Context) {
	days, err := h.service.Days(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// AddItem godoc
// @Summary Add an item to a day
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Trip id"
// @Param payload body dto.AddItemRequest true "Item payload"
// @Success 201 {object} response.Envelope
// @Router /trips/{id}/items [post]
func (h *ItineraryHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid item payload"))
		return
	}
	item, err := h.service.AddItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateItem godoc
// @Summary Update an item
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Trip id"
// @Param day path int true "Day number"
// @Param itemId path string true "Item id"
// @Param payload body dto.UpdateItemRequest true "Item patch"
// @Success 204
// @Router /trips/{id}/days/{day}/items/{itemId} [patch]
func (h *ItineraryHandler) UpdateItem(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid item patch"))
		return
	}
	if err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), day, c.Param("itemId"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags Itinerary
// @Param id path string true "Trip id"
// @Param day path int true "Day number"
// @Param itemId path string true "Item id"
// @Success 204
// @Router /trips/{id}/days/{day}/items/{itemId} [delete]
func (h *ItineraryHandler) DeleteItem(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("id"), day, c.Param("itemId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MoveItem godoc
// @Summary Move an item to another day
// @Tags Itinerary
// @Accept json
// @Param id path string true "Trip id"
// @Param day path int true "Source day number"
// @Param itemId path string true "Item id"
// @Param payload body dto.MoveItemRequest true "Target day"
// @Success 204
// @Router /trips/{id}/days/{day}/items/{itemId}/move [post]
func (h *ItineraryHandler) MoveItem(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req dto.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid move payload"))
		return
	}
	if err := h.service.MoveItem(c.Request.Context(), c.Param("id"), day, c.Param("itemId"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddDay godoc
// @Summary Append a day
// @Tags Itinerary
// @Produce json
// @Param id path string true "Trip id"
// @Success 201 {object} response.Envelope
// @Router /trips/{id}/days [post]
func (h *ItineraryHandler) AddDay(c *gin.Context) {
	day, err := h.service.AddDay(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, day)
}

// RemoveDay godoc
// @Summary Remove a day
// @Tags Itinerary
// @Param id path string true "Trip id"
// @Param day path int true "Day number"
// @Success 204
// @Router /trips/{id}/days/{day} [delete]
func (h *ItineraryHandler) RemoveDay(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	if err := h.service.RemoveDay(c.Request.Context(), c.Param("id"), day); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

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

type tripService interface {
	List(ctx context.Context, page, pageSize int) (*dto.TripListResponse, error)
	Get(ctx context.Context, id string) (*models.Trip, error)
	Create(ctx context.Context, req dto.CreateTripRequest) (*models.Trip, error)
	Update(ctx context.Context, id string, req dto.UpdateTripRequest) (*models.Trip, error)
	Delete(ctx context.Context, id string) error
}

type tripEvictor interface {
	Evict(tripID string)
}

// TripHandler exposes trip CRUD endpoints.
type TripHandler struct {
	service   tripService
	itinerary tripEvictor
}

// NewTripHandler builds a new handler.
func NewTripHandler(service tripService, itinerary tripEvictor) *TripHandler {
	return &TripHandler{service: service, itinerary: itinerary}
}

// List godoc
// @Summary List trips
// @Tags Trips
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /trips [get]
func (h *TripHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.service.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Trips, &result.Pagination)
}

// Get godoc
// @Summary Get trip by id
// @Tags Trips
// @Produce json
// @Param id path string true "Trip id"
// @Success 200 {object} response.Envelope
// @Router /trips/{id} [get]
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trip, nil)
}

// Create godoc
// @Summary Create trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} response.Envelope
// @Router /trips [post]
func (h *TripHandler) Create(c *gin.Context) {
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid trip payload"))
		return
	}
	trip, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, trip)
}

// Update godoc
// @Summary Update trip metadata
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip id"
// @Param payload body dto.UpdateTripRequest true "Trip payload"
// @Success 200 {object} response.Envelope
// @Router /trips/{id} [patch]
func (h *TripHandler) Update(c *gin.Context) {
	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid trip payload"))
		return
	}
	trip, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trip, nil)
}

// Delete godoc
// @Summary Delete trip
// @Tags Trips
// @Param id path string true "Trip id"
// @Success 204
// @Router /trips/{id} [delete]
func (h *TripHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	if h.itinerary != nil {
		h.itinerary.Evict(id)
	}
	response.NoContent(c)
}

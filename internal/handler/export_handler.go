package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/pkg/response"
)

type exportService interface {
	CreateArtifact(trip *models.Trip, format string) (*dto.ExportArtifact, error)
	Open(token string) (*os.File, string, error)
}

// ExportHandler creates export artifacts and serves their signed downloads.
type ExportHandler struct {
	service   exportService
	trips     tripReader
	itinerary daysReader
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService, trips tripReader, itinerary daysReader) *ExportHandler {
	return &ExportHandler{service: service, trips: trips, itinerary: itinerary}
}

// Create godoc
// @Summary Render a trip export and return a signed download link
// @Tags Exports
// @Produce json
// @Param id path string true "Trip id"
// @Param format query string false "csv, pdf or ics" default(csv)
// @Success 201 {object} response.Envelope
// @Router /trips/{id}/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	trip, err := h.trips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	days, err := h.itinerary.Days(c.Request.Context(), trip.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	trip.Days = days

	artifact, err := h.service.CreateArtifact(trip, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, artifact)
}

// Download godoc
// @Summary Download an export by signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed export token"
// @Success 200 {file} binary
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, contentType, err := h.service.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(file.Name()))
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}

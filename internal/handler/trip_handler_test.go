package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/response"
)

type tripServiceMock struct {
	trip      *models.Trip
	getErr    error
	deleteErr error
	created   *dto.CreateTripRequest
	deleted   []string
}

func (m *tripServiceMock) List(ctx context.Context, page, pageSize int) (*dto.TripListResponse, error) {
	trips := []models.Trip{}
	if m.trip != nil {
		trips = append(trips, *m.trip)
	}
	return &dto.TripListResponse{
		Trips:      trips,
		Pagination: models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(trips)},
	}, nil
}

func (m *tripServiceMock) Get(ctx context.Context, id string) (*models.Trip, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.trip, nil
}

func (m *tripServiceMock) Create(ctx context.Context, req dto.CreateTripRequest) (*models.Trip, error) {
	m.created = &req
	return &models.Trip{ID: "trip-1", Name: req.Name}, nil
}

func (m *tripServiceMock) Update(ctx context.Context, id string, req dto.UpdateTripRequest) (*models.Trip, error) {
	return m.trip, nil
}

func (m *tripServiceMock) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type evictorMock struct {
	evicted []string
}

func (m *evictorMock) Evict(tripID string) {
	m.evicted = append(m.evicted, tripID)
}

func TestTripHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTripHandler(&tripServiceMock{trip: &models.Trip{ID: "trip-1", Name: "Paris"}}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trips/trip-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "trip-1"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Error)
}

func TestTripHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTripHandler(&tripServiceMock{getErr: appErrors.ErrTripNotFound}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trips/ghost", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrTripNotFound.Code, envelope.Error.Code)
}

func TestTripHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &tripServiceMock{}
	handler := NewTripHandler(mock, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CreateTripRequest{Name: "Tokyo", StartDate: "2025-06-01", Days: 3})
	req, _ := http.NewRequest(http.MethodPost, "/trips", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mock.created)
	assert.Equal(t, "Tokyo", mock.created.Name)
}

func TestTripHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTripHandler(&tripServiceMock{}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/trips", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTripHandlerDeleteEvictsItinerary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &tripServiceMock{}
	evictor := &evictorMock{}
	handler := NewTripHandler(mock, evictor)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/trips/trip-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "trip-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"trip-1"}, mock.deleted)
	assert.Equal(t, []string{"trip-1"}, evictor.evicted)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/internal/service"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/response"
)

type scheduleEngineMock struct {
	conflicts []models.Conflict
	state     models.DayScheduleState
}

func (m *scheduleEngineMock) CheckConflicts(days []models.TripDay) []models.Conflict {
	return m.conflicts
}

func (m *scheduleEngineMock) Optimize(days []models.TripDay) []models.TripDay {
	return days
}

func (m *scheduleEngineMock) AutoSchedule(day models.TripDay) models.TripDay {
	for i := range day.Items {
		day.Items[i].Time = "9:00 AM"
	}
	return day
}

func (m *scheduleEngineMock) DayState(day models.TripDay) models.DayScheduleState {
	return m.state
}

func (m *scheduleEngineMock) FindGaps(day models.TripDay, minGap int) []models.ScheduleGap {
	return nil
}

func (m *scheduleEngineMock) SummarizeRoute(day models.TripDay) service.RouteSummary {
	return service.RouteSummary{Stops: len(day.Items), DistanceKm: 3.2}
}

type itineraryAccessorMock struct {
	days     []models.TripDay
	daysErr  error
	replaced [][]models.TripDay
}

func (m *itineraryAccessorMock) Days(ctx context.Context, tripID string) ([]models.TripDay, error) {
	if m.daysErr != nil {
		return nil, m.daysErr
	}
	return m.days, nil
}

func (m *itineraryAccessorMock) Replace(ctx context.Context, tripID string, days []models.TripDay) error {
	m.replaced = append(m.replaced, days)
	return nil
}

func scheduleTestContext(t *testing.T, method, target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = params
	return c, w
}

func TestScheduleHandlerConflicts(t *testing.T) {
	engine := &scheduleEngineMock{conflicts: []models.Conflict{{DayIndex: 0, Description: "overlap"}}}
	itins := &itineraryAccessorMock{days: []models.TripDay{{Day: 1}}}
	handler := NewScheduleHandler(engine, itins, 60)

	c, w := scheduleTestContext(t, http.MethodGet, "/trips/trip-1/schedule/conflicts", gin.Params{{Key: "id", Value: "trip-1"}})
	handler.Conflicts(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	payload, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), payload["count"])
}

func TestScheduleHandlerOptimizePersistsResult(t *testing.T) {
	engine := &scheduleEngineMock{}
	itins := &itineraryAccessorMock{days: []models.TripDay{{Day: 1}, {Day: 2}}}
	handler := NewScheduleHandler(engine, itins, 60)

	c, w := scheduleTestContext(t, http.MethodPost, "/trips/trip-1/schedule/optimize", gin.Params{{Key: "id", Value: "trip-1"}})
	handler.Optimize(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, itins.replaced, 1)
}

func TestScheduleHandlerDayOutOfRange(t *testing.T) {
	engine := &scheduleEngineMock{}
	itins := &itineraryAccessorMock{days: []models.TripDay{{Day: 1}}}
	handler := NewScheduleHandler(engine, itins, 60)

	c, w := scheduleTestContext(t, http.MethodGet, "/trips/trip-1/schedule/days/5/state", gin.Params{
		{Key: "id", Value: "trip-1"},
		{Key: "day", Value: "5"},
	})
	handler.DayState(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrDayNotFound.Code, envelope.Error.Code)
}

func TestScheduleHandlerInvalidDayParam(t *testing.T) {
	handler := NewScheduleHandler(&scheduleEngineMock{}, &itineraryAccessorMock{}, 60)

	c, w := scheduleTestContext(t, http.MethodGet, "/trips/trip-1/schedule/days/zero/gaps", gin.Params{
		{Key: "id", Value: "trip-1"},
		{Key: "day", Value: "zero"},
	})
	handler.Gaps(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// shrinkingAccessorMock serves a different snapshot on every Days call,
// mimicking a concurrent day removal between reads.
type shrinkingAccessorMock struct {
	snapshots [][]models.TripDay
	calls     int
	replaced  [][]models.TripDay
}

func (m *shrinkingAccessorMock) Days(ctx context.Context, tripID string) ([]models.TripDay, error) {
	snapshot := m.snapshots[m.calls]
	m.calls++
	return snapshot, nil
}

func (m *shrinkingAccessorMock) Replace(ctx context.Context, tripID string, days []models.TripDay) error {
	m.replaced = append(m.replaced, days)
	return nil
}

func TestScheduleHandlerAutoScheduleReadsOneSnapshot(t *testing.T) {
	engine := &scheduleEngineMock{}
	itins := &shrinkingAccessorMock{snapshots: [][]models.TripDay{
		{{Day: 1}, {Day: 2, Items: []models.TripItem{{ID: "item-1", Title: "Museum"}}}},
		{{Day: 1}},
	}}
	handler := NewScheduleHandler(engine, itins, 60)

	c, w := scheduleTestContext(t, http.MethodPost, "/trips/trip-1/schedule/days/2/auto", gin.Params{
		{Key: "id", Value: "trip-1"},
		{Key: "day", Value: "2"},
	})
	handler.AutoSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, itins.calls, "bounds check and write must share a snapshot")
	require.Len(t, itins.replaced, 1)
	require.Len(t, itins.replaced[0], 2)
	assert.Equal(t, "9:00 AM", itins.replaced[0][1].Items[0].Time)
}

func TestScheduleHandlerAutoScheduleWritesBack(t *testing.T) {
	engine := &scheduleEngineMock{}
	itins := &itineraryAccessorMock{days: []models.TripDay{
		{Day: 1, Items: []models.TripItem{{ID: "item-1", Title: "Museum"}}},
	}}
	handler := NewScheduleHandler(engine, itins, 60)

	c, w := scheduleTestContext(t, http.MethodPost, "/trips/trip-1/schedule/days/1/auto", gin.Params{
		{Key: "id", Value: "trip-1"},
		{Key: "day", Value: "1"},
	})
	handler.AutoSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, itins.replaced, 1)
	assert.Equal(t, "9:00 AM", itins.replaced[0][0].Items[0].Time)
}

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
)

type tripStoreMock struct {
	trips   map[string]*models.Trip
	deleted []string
}

func newTripStoreMock() *tripStoreMock {
	return &tripStoreMock{trips: make(map[string]*models.Trip)}
}

func (m *tripStoreMock) List(ctx context.Context, page, pageSize int) ([]models.Trip, int, error) {
	out := make([]models.Trip, 0, len(m.trips))
	for _, trip := range m.trips {
		out = append(out, *trip)
	}
	return out, len(out), nil
}

func (m *tripStoreMock) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	trip, ok := m.trips[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *trip
	return &clone, nil
}

func (m *tripStoreMock) Create(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = "generated-id"
	}
	m.trips[trip.ID] = trip
	return nil
}

func (m *tripStoreMock) Update(ctx context.Context, trip *models.Trip) error {
	if _, ok := m.trips[trip.ID]; !ok {
		return sql.ErrNoRows
	}
	m.trips[trip.ID] = trip
	return nil
}

func (m *tripStoreMock) Delete(ctx context.Context, id string) error {
	if _, ok := m.trips[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.trips, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newTripService(repo *tripStoreMock) *TripService {
	cache := NewCacheService(nil, nil, 0, nil, false)
	return NewTripService(repo, cache, nil, nil, 10*time.Minute, 2)
}

func TestTripServiceCreateSeedsDays(t *testing.T) {
	repo := newTripStoreMock()
	svc := newTripService(repo)

	trip, err := svc.Create(context.Background(), dto.CreateTripRequest{
		Name:      "Paris",
		StartDate: "2025-06-01",
		Days:      3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, 2, trip.Travelers, "traveler default applies when omitted")
	require.Len(t, trip.Days, 3)
	assert.Equal(t, "Day 1", trip.Days[0].Date)
	assert.Equal(t, 3, trip.Days[2].Day)
}

func TestTripServiceCreateValidation(t *testing.T) {
	svc := newTripService(newTripStoreMock())

	_, err := svc.Create(context.Background(), dto.CreateTripRequest{Name: "", StartDate: "2025-06-01"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), dto.CreateTripRequest{Name: "Paris", StartDate: "June 1st"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTripServiceGetMissing(t *testing.T) {
	svc := newTripService(newTripStoreMock())

	_, err := svc.Get(context.Background(), "ghost")
	assert.Equal(t, appErrors.ErrTripNotFound.Code, appErrors.FromError(err).Code)
}

func TestTripServiceUpdatePartial(t *testing.T) {
	repo := newTripStoreMock()
	svc := newTripService(repo)

	created, err := svc.Create(context.Background(), dto.CreateTripRequest{
		Name:      "Paris",
		StartDate: "2025-06-01",
		Budget:    1000,
	})
	require.NoError(t, err)

	budget := 2500.0
	updated, err := svc.Update(context.Background(), created.ID, dto.UpdateTripRequest{Budget: &budget})
	require.NoError(t, err)
	assert.Equal(t, "Paris", updated.Name, "unset fields keep their value")
	assert.Equal(t, 2500.0, updated.Budget)
}

func TestTripServiceDelete(t *testing.T) {
	repo := newTripStoreMock()
	svc := newTripService(repo)

	created, err := svc.Create(context.Background(), dto.CreateTripRequest{Name: "Paris", StartDate: "2025-06-01"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Equal(t, []string{created.ID}, repo.deleted)

	err = svc.Delete(context.Background(), created.ID)
	assert.Equal(t, appErrors.ErrTripNotFound.Code, appErrors.FromError(err).Code)
}

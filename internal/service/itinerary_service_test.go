package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/jobs"
)

type fakeTripPersister struct {
	mu    sync.Mutex
	trip  *models.Trip
	saved [][]models.TripDay
}

func (f *fakeTripPersister) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.trip == nil || f.trip.ID != id {
		return nil, sql.ErrNoRows
	}
	trip := *f.trip
	return &trip, nil
}

func (f *fakeTripPersister) UpdateDays(ctx context.Context, id string, days []models.TripDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.trip == nil || f.trip.ID != id {
		return sql.ErrNoRows
	}
	f.saved = append(f.saved, days)
	return nil
}

func (f *fakeTripPersister) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type captureQueue struct {
	mu   sync.Mutex
	jobs []jobs.Job
}

func (q *captureQueue) Enqueue(job jobs.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *captureQueue) snapshot() []jobs.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]jobs.Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}

func newItineraryFixture(t *testing.T, debounce time.Duration) (*ItineraryService, *fakeTripPersister, *captureQueue) {
	t.Helper()
	repo := &fakeTripPersister{trip: &models.Trip{
		ID:        "trip-1",
		Name:      "Paris",
		Travelers: 2,
		Days: []models.TripDay{
			{Day: 1, Date: "Day 1", Items: []models.TripItem{
				{ID: "item-1", Title: "Louvre", Type: models.ItemTypeActivity, Time: "10:00 AM", Duration: "2h", Status: models.ItemStatusPlanned},
			}},
		},
	}}
	queue := &captureQueue{}
	cache := NewCacheService(nil, nil, 0, nil, false)
	svc := NewItineraryService(repo, cache, queue, nil, nil, nil, debounce, 3)
	return svc, repo, queue
}

func TestItineraryServiceHydratesFromRepository(t *testing.T) {
	svc, _, _ := newItineraryFixture(t, time.Hour)

	days, err := svc.Days(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Louvre", days[0].Items[0].Title)
}

func TestItineraryServiceUnknownTrip(t *testing.T) {
	svc, _, _ := newItineraryFixture(t, time.Hour)

	_, err := svc.Days(context.Background(), "ghost")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrTripNotFound.Code, appErr.Code)
}

func TestItineraryServiceAddItemValidation(t *testing.T) {
	svc, _, _ := newItineraryFixture(t, time.Hour)

	_, err := svc.AddItem(context.Background(), "trip-1", dto.AddItemRequest{Day: 1, Title: "Dinner", Type: "party"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestItineraryServiceAddItemCreatesDay(t *testing.T) {
	svc, _, _ := newItineraryFixture(t, time.Hour)

	item, err := svc.AddItem(context.Background(), "trip-1", dto.AddItemRequest{
		Day:   3,
		Title: "Check-in",
		Type:  string(models.ItemTypeStay),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.ItemStatusPlanned, item.Status)

	days, err := svc.Days(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "Day 2", days[1].Date)
	assert.Equal(t, "Check-in", days[2].Items[0].Title)
}

func TestItineraryServiceStrictMutationsSurfaceNotFound(t *testing.T) {
	svc, _, _ := newItineraryFixture(t, time.Hour)
	ctx := context.Background()

	title := "Renamed"
	err := svc.UpdateItem(ctx, "trip-1", 1, "ghost", dto.UpdateItemRequest{Title: &title})
	assert.Equal(t, appErrors.ErrItemNotFound.Code, appErrors.FromError(err).Code)

	err = svc.DeleteItem(ctx, "trip-1", 1, "ghost")
	assert.Equal(t, appErrors.ErrItemNotFound.Code, appErrors.FromError(err).Code)

	err = svc.RemoveDay(ctx, "trip-1", 9)
	assert.Equal(t, appErrors.ErrDayNotFound.Code, appErrors.FromError(err).Code)
}

func TestItineraryServiceDebouncesSaves(t *testing.T) {
	svc, _, queue := newItineraryFixture(t, 30*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddItem(ctx, "trip-1", dto.AddItemRequest{Day: 1, Title: "Stop", Type: string(models.ItemTypeActivity)})
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		return len(queue.snapshot()) == 1
	}, time.Second, 5*time.Millisecond, "rapid edits should collapse into one save job")

	// No further jobs arrive once the burst has flushed.
	time.Sleep(60 * time.Millisecond)
	captured := queue.snapshot()
	require.Len(t, captured, 1)

	payload, ok := captured[0].Payload.(SaveJobPayload)
	require.True(t, ok)
	assert.Equal(t, "trip-1", payload.TripID)
	assert.Len(t, payload.Days[0].Items, 4, "snapshot carries the latest state, not the first edit")
}

func TestItineraryServiceFlushBypassesDebounce(t *testing.T) {
	svc, _, queue := newItineraryFixture(t, time.Hour)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "trip-1", dto.AddItemRequest{Day: 1, Title: "Stop", Type: string(models.ItemTypeFood)})
	require.NoError(t, err)
	require.Empty(t, queue.snapshot())

	svc.Flush()
	require.Len(t, queue.snapshot(), 1)
}

func TestItineraryServiceHandleSaveJob(t *testing.T) {
	svc, repo, _ := newItineraryFixture(t, time.Hour)

	days := []models.TripDay{{Day: 1, Date: "Day 1"}}
	err := svc.HandleSaveJob(context.Background(), jobs.Job{
		ID:      "job-1",
		Type:    SaveJobType,
		Payload: SaveJobPayload{TripID: "trip-1", Days: days},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saveCount())
}

func TestItineraryServiceHandleSaveJobMissingTrip(t *testing.T) {
	svc, repo, _ := newItineraryFixture(t, time.Hour)

	// A deleted trip is dropped rather than retried forever.
	err := svc.HandleSaveJob(context.Background(), jobs.Job{
		ID:      "job-1",
		Type:    SaveJobType,
		Payload: SaveJobPayload{TripID: "ghost", Days: nil},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.saveCount())
}

func TestItineraryServiceMoveItemAcrossDays(t *testing.T) {
	svc, _, _ := newItineraryFixture(t, time.Hour)
	ctx := context.Background()

	_, err := svc.AddDay(ctx, "trip-1")
	require.NoError(t, err)

	err = svc.MoveItem(ctx, "trip-1", 1, "item-1", dto.MoveItemRequest{ToDay: 2})
	require.NoError(t, err)

	days, err := svc.Days(ctx, "trip-1")
	require.NoError(t, err)
	assert.Empty(t, days[0].Items)
	require.Len(t, days[1].Items, 1)
	assert.Equal(t, "item-1", days[1].Items[0].ID)
}

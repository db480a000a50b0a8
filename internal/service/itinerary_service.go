package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/internal/repository"
	"github.com/noah-isme/wayplan-api/internal/store"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/jobs"
)

// SaveJobType labels itinerary persistence jobs on the queue.
const SaveJobType = "itinerary.save"

// SaveJobPayload carries one debounced snapshot to the worker pool.
type SaveJobPayload struct {
	TripID string
	Days   []models.TripDay
}

// itineraryPersister is the slice of the trip repository the itinerary
// pipeline needs.
type itineraryPersister interface {
	FindByID(ctx context.Context, id string) (*models.Trip, error)
	UpdateDays(ctx context.Context, id string, days []models.TripDay) error
}

// saveQueue lets tests swap the worker pool for a synchronous fake.
type saveQueue interface {
	Enqueue(job jobs.Job) error
}

// ItineraryService owns the in-memory day plans. Each trip gets one
// ItineraryStore hydrated on first touch; every mutation flows through the
// store, and store notifications feed a per-trip debounce timer that pushes
// snapshots onto the save queue.
type ItineraryService struct {
	repo      itineraryPersister
	cache     *CacheService
	queue     saveQueue
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	debounce  time.Duration
	retries   int

	mu      sync.Mutex
	stores  map[string]*store.ItineraryStore
	timers  map[string]*time.Timer
	pending map[string][]models.TripDay
}

// NewItineraryService constructs the itinerary service.
func NewItineraryService(repo itineraryPersister, cache *CacheService, queue saveQueue, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, debounce time.Duration, retries int) *ItineraryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	if retries < 1 {
		retries = 3
	}
	return &ItineraryService{
		repo:      repo,
		cache:     cache,
		queue:     queue,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		debounce:  debounce,
		retries:   retries,
		stores:    make(map[string]*store.ItineraryStore),
		timers:    make(map[string]*time.Timer),
		pending:   make(map[string][]models.TripDay),
	}
}

// SetQueue attaches the save queue. The queue's handler is this service's
// HandleSaveJob, so the two are built in two steps.
func (s *ItineraryService) SetQueue(queue saveQueue) {
	s.mu.Lock()
	s.queue = queue
	s.mu.Unlock()
}

// Days returns the current itinerary snapshot for a trip.
func (s *ItineraryService) Days(ctx context.Context, tripID string) ([]models.TripDay, error) {
	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return st.Snapshot(), nil
}

// AddItem appends an item to a day, creating the day when needed.
func (s *ItineraryService) AddItem(ctx context.Context, tripID string, req dto.AddItemRequest) (*models.TripItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if !models.ValidItemType(req.Type) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown item type %q", req.Type))
	}
	if req.Status != "" && !models.ValidItemStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown item status %q", req.Status))
	}

	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return nil, err
	}
	item := st.AddItem(req.Day-1, req.Item())
	return &item, nil
}

// UpdateItem applies a partial update to one item.
func (s *ItineraryService) UpdateItem(ctx context.Context, tripID string, day int, itemID string, req dto.UpdateItemRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if req.Type != nil && !models.ValidItemType(*req.Type) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown item type %q", *req.Type))
	}
	if req.Status != nil && !models.ValidItemStatus(*req.Status) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown item status %q", *req.Status))
	}

	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return err
	}
	if err := st.UpdateItemStrict(day-1, itemID, req.Patch()); err != nil {
		return err
	}
	return nil
}

// DeleteItem removes one item from a day.
func (s *ItineraryService) DeleteItem(ctx context.Context, tripID string, day int, itemID string) error {
	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return err
	}
	if err := st.DeleteItemStrict(day-1, itemID); err != nil {
		return err
	}
	return nil
}

// MoveItem relocates an item to the end of another day.
func (s *ItineraryService) MoveItem(ctx context.Context, tripID string, fromDay int, itemID string, req dto.MoveItemRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return err
	}
	if err := st.MoveItemStrict(fromDay-1, req.ToDay-1, itemID); err != nil {
		return err
	}
	return nil
}

// AddDay appends a new empty day after the current last one.
func (s *ItineraryService) AddDay(ctx context.Context, tripID string) (*models.TripDay, error) {
	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return nil, err
	}
	day := st.AddDay()
	return &day, nil
}

// RemoveDay splices out a day without renumbering the rest.
func (s *ItineraryService) RemoveDay(ctx context.Context, tripID string, day int) error {
	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return err
	}
	if err := st.RemoveDayStrict(day - 1); err != nil {
		return err
	}
	return nil
}

// Replace swaps the whole itinerary, used by optimize/auto-schedule flows
// that compute a new plan from a snapshot.
func (s *ItineraryService) Replace(ctx context.Context, tripID string, days []models.TripDay) error {
	st, err := s.storeFor(ctx, tripID)
	if err != nil {
		return err
	}
	st.Replace(days)
	return nil
}

// HandleSaveJob is the queue handler persisting debounced snapshots.
func (s *ItineraryService) HandleSaveJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(SaveJobPayload)
	if !ok {
		s.logger.Error("unexpected save job payload", zap.String("jobId", job.ID))
		return nil
	}

	start := time.Now()
	err := s.repo.UpdateDays(ctx, payload.TripID, payload.Days)
	if s.metrics != nil {
		s.metrics.ObserveSave(time.Since(start), err != nil && job.Attempt >= s.retries)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Trip deleted while a save was in flight; nothing left to persist.
			s.logger.Warn("dropping save for missing trip", zap.String("tripId", payload.TripID))
			return nil
		}
		return fmt.Errorf("persist itinerary %s: %w", payload.TripID, err)
	}

	if cacheErr := s.cache.Invalidate(ctx, repository.TripPattern(payload.TripID)); cacheErr != nil {
		s.logger.Debug("itinerary cache invalidate skipped", zap.String("tripId", payload.TripID), zap.Error(cacheErr))
	}
	s.logger.Debug("itinerary saved", zap.String("tripId", payload.TripID), zap.Int("days", len(payload.Days)))
	return nil
}

// Flush enqueues any pending snapshots immediately, bypassing the debounce.
// Called on shutdown so edits are not lost.
func (s *ItineraryService) Flush() {
	s.mu.Lock()
	tripIDs := make([]string, 0, len(s.pending))
	for tripID := range s.pending {
		tripIDs = append(tripIDs, tripID)
	}
	s.mu.Unlock()

	for _, tripID := range tripIDs {
		s.flush(tripID)
	}
}

// Evict drops the in-memory store for a trip, discarding any pending
// save rather than writing it. Used when a trip is deleted.
func (s *ItineraryService) Evict(tripID string) {
	s.mu.Lock()
	if timer, ok := s.timers[tripID]; ok {
		timer.Stop()
		delete(s.timers, tripID)
	}
	delete(s.pending, tripID)
	delete(s.stores, tripID)
	s.mu.Unlock()
}

func (s *ItineraryService) storeFor(ctx context.Context, tripID string) (*store.ItineraryStore, error) {
	if tripID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trip id is required")
	}

	s.mu.Lock()
	if st, ok := s.stores[tripID]; ok {
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have hydrated the store while we were loading.
	if st, ok := s.stores[tripID]; ok {
		return st, nil
	}
	st := store.New(trip.Days)
	st.Subscribe(func(days []models.TripDay) {
		s.scheduleSave(tripID, days)
	})
	s.stores[tripID] = st
	return st, nil
}

func (s *ItineraryService) loadTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var cached models.Trip
	if hit, _ := s.cache.Get(ctx, repository.TripKey(tripID), &cached); hit {
		return &cached, nil
	}
	trip, err := s.repo.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip %s: %w", tripID, err)
	}
	return trip, nil
}

// scheduleSave records the latest snapshot and arms (or re-arms) the
// per-trip debounce timer.
func (s *ItineraryService) scheduleSave(tripID string, days []models.TripDay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[tripID] = days
	if timer, ok := s.timers[tripID]; ok {
		timer.Reset(s.debounce)
		return
	}
	s.timers[tripID] = time.AfterFunc(s.debounce, func() {
		s.flush(tripID)
	})
}

func (s *ItineraryService) flush(tripID string) {
	s.mu.Lock()
	days, ok := s.pending[tripID]
	delete(s.pending, tripID)
	if timer, exists := s.timers[tripID]; exists {
		timer.Stop()
		delete(s.timers, tripID)
	}
	queue := s.queue
	s.mu.Unlock()

	if !ok || queue == nil {
		return
	}

	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    SaveJobType,
		Payload: SaveJobPayload{TripID: tripID, Days: days},
	}
	if err := queue.Enqueue(job); err != nil {
		s.logger.Error("failed to enqueue itinerary save", zap.String("tripId", tripID), zap.Error(err))
	}
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/internal/repository"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
)

// TripStore abstracts trip persistence for the service layer.
type TripStore interface {
	List(ctx context.Context, page, pageSize int) ([]models.Trip, int, error)
	FindByID(ctx context.Context, id string) (*models.Trip, error)
	Create(ctx context.Context, trip *models.Trip) error
	Update(ctx context.Context, trip *models.Trip) error
	Delete(ctx context.Context, id string) error
}

// TripService handles trip lifecycle: metadata CRUD plus the read-through
// cache in front of the trip documents.
type TripService struct {
	repo             TripStore
	cache            *CacheService
	validator        *validator.Validate
	logger           *zap.Logger
	cacheTTL         time.Duration
	defaultTravelers int
}

// NewTripService constructs a trip service.
func NewTripService(repo TripStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration, defaultTravelers int) *TripService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultTravelers < 1 {
		defaultTravelers = 1
	}
	return &TripService{
		repo:             repo,
		cache:            cache,
		validator:        validate,
		logger:           logger,
		cacheTTL:         cacheTTL,
		defaultTravelers: defaultTravelers,
	}
}

// List returns a page of trips.
func (s *TripService) List(ctx context.Context, page, pageSize int) (*dto.TripListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	trips, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return &dto.TripListResponse{
		Trips:      trips,
		Pagination: models.Pagination{Page: page, PageSize: pageSize, TotalCount: total},
	}, nil
}

// Get fetches a trip, cache first.
func (s *TripService) Get(ctx context.Context, id string) (*models.Trip, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trip id is required")
	}

	var cached models.Trip
	if hit, _ := s.cache.Get(ctx, repository.TripKey(id), &cached); hit {
		return &cached, nil
	}

	trip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip %s: %w", id, err)
	}

	if err := s.cache.Set(ctx, repository.TripKey(id), trip, s.cacheTTL); err != nil {
		s.logger.Debug("trip cache fill skipped", zap.String("tripId", id), zap.Error(err))
	}
	return trip, nil
}

// Create validates the request and inserts a trip seeded with empty days.
func (s *TripService) Create(ctx context.Context, req dto.CreateTripRequest) (*models.Trip, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
	}

	travelers := req.Travelers
	if travelers < 1 {
		travelers = s.defaultTravelers
	}

	days := make([]models.TripDay, 0, req.Days)
	for i := 1; i <= req.Days; i++ {
		days = append(days, models.TripDay{Day: i, Date: fmt.Sprintf("Day %d", i), Items: []models.TripItem{}})
	}

	trip := &models.Trip{
		Name:      req.Name,
		StartDate: startDate,
		Travelers: travelers,
		Budget:    req.Budget,
		Days:      days,
	}
	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	s.logger.Info("trip created", zap.String("tripId", trip.ID), zap.String("name", trip.Name), zap.Int("days", len(trip.Days)))
	return trip, nil
}

// Update applies a partial metadata update and refreshes the cache.
func (s *TripService) Update(ctx context.Context, id string, req dto.UpdateTripRequest) (*models.Trip, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	trip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, parseErr := time.Parse("2006-01-02", *req.StartDate)
		if parseErr != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
		}
		trip.StartDate = startDate
	}
	if req.Travelers != nil {
		trip.Travelers = *req.Travelers
	}
	if req.Budget != nil {
		trip.Budget = *req.Budget
	}

	if err := s.repo.Update(ctx, trip); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("update trip %s: %w", id, err)
	}

	if err := s.cache.Invalidate(ctx, repository.TripPattern(id)); err != nil {
		s.logger.Debug("trip cache invalidate skipped", zap.String("tripId", id), zap.Error(err))
	}
	return trip, nil
}

// Delete removes a trip and its cached payloads.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrTripNotFound
		}
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	if err := s.cache.Invalidate(ctx, repository.TripPattern(id)); err != nil {
		s.logger.Debug("trip cache invalidate skipped", zap.String("tripId", id), zap.Error(err))
	}
	s.logger.Info("trip deleted", zap.String("tripId", id))
	return nil
}

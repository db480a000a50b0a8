package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/wayplan-api/internal/models"
)

// TripRepository persists trips. The day-by-day itinerary travels as one
// JSONB document per trip; the store is keyed by trip id and nothing in
// the schema knows about individual items.
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository constructs a trip repository.
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

type tripRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	StartDate time.Time      `db:"start_date"`
	Travelers int            `db:"travelers"`
	Budget    float64        `db:"budget"`
	Days      types.JSONText `db:"days"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r tripRow) toModel() (*models.Trip, error) {
	trip := &models.Trip{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: r.StartDate,
		Travelers: r.Travelers,
		Budget:    r.Budget,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.Days) > 0 {
		if err := json.Unmarshal(r.Days, &trip.Days); err != nil {
			return nil, fmt.Errorf("unmarshal trip days for %s: %w", r.ID, err)
		}
	}
	return trip, nil
}

// List returns trips ordered by creation time, newest first.
func (r *TripRepository) List(ctx context.Context, page, pageSize int) ([]models.Trip, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`SELECT id, name, start_date, travelers, budget, days, created_at, updated_at
FROM trips ORDER BY created_at DESC LIMIT %d OFFSET %d`, pageSize, offset)

	var rows []tripRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, 0, fmt.Errorf("list trips: %w", err)
	}

	trips := make([]models.Trip, 0, len(rows))
	for _, row := range rows {
		trip, err := row.toModel()
		if err != nil {
			return nil, 0, err
		}
		trips = append(trips, *trip)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM trips"); err != nil {
		return nil, 0, fmt.Errorf("count trips: %w", err)
	}
	return trips, total, nil
}

// FindByID fetches one trip. sql.ErrNoRows passes through for the service
// layer to map.
func (r *TripRepository) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	const query = `SELECT id, name, start_date, travelers, budget, days, created_at, updated_at
FROM trips WHERE id = $1`
	var row tripRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toModel()
}

// Create inserts a trip, assigning an id when absent.
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	payload, err := json.Marshal(trip.Days)
	if err != nil {
		return fmt.Errorf("marshal trip days: %w", err)
	}

	const query = `INSERT INTO trips (id, name, start_date, travelers, budget, days, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		trip.ID, trip.Name, trip.StartDate, trip.Travelers, trip.Budget,
		types.JSONText(payload), trip.CreatedAt, trip.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

// Update rewrites the trip metadata and day document.
func (r *TripRepository) Update(ctx context.Context, trip *models.Trip) error {
	payload, err := json.Marshal(trip.Days)
	if err != nil {
		return fmt.Errorf("marshal trip days: %w", err)
	}
	trip.UpdatedAt = time.Now().UTC()

	const query = `UPDATE trips SET name = $2, start_date = $3, travelers = $4, budget = $5, days = $6, updated_at = $7
WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		trip.ID, trip.Name, trip.StartDate, trip.Travelers, trip.Budget,
		types.JSONText(payload), trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update trip %s: %w", trip.ID, err)
	}
	return ensureRowTouched(result)
}

// UpdateDays persists only the day document, the hot path behind the
// autosave loop.
func (r *TripRepository) UpdateDays(ctx context.Context, id string, days []models.TripDay) error {
	payload, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("marshal trip days: %w", err)
	}

	const query = `UPDATE trips SET days = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, types.JSONText(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update trip days %s: %w", id, err)
	}
	return ensureRowTouched(result)
}

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	return ensureRowTouched(result)
}

func ensureRowTouched(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

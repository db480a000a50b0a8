package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wayplan-api/internal/models"
)

func newTripMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleDaysJSON(t *testing.T) []byte {
	payload, err := json.Marshal([]models.TripDay{
		{Day: 1, Date: "Day 1", Items: []models.TripItem{
			{ID: "item-1", Title: "Louvre", Type: models.ItemTypeActivity, Time: "10:00 AM", Duration: "2h", Status: models.ItemStatusPlanned},
		}},
	})
	require.NoError(t, err)
	return payload
}

func TestTripRepositoryList(t *testing.T) {
	db, mock, cleanup := newTripMock(t)
	defer cleanup()
	repo := NewTripRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "start_date", "travelers", "budget", "days", "created_at", "updated_at"}).
		AddRow("trip-1", "Paris", time.Now(), 2, 1500.0, sampleDaysJSON(t), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, start_date, travelers, budget, days, created_at, updated_at\nFROM trips ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM trips")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	trips, total, err := repo.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, trips, 1)
	assert.Equal(t, 1, total)
	require.Len(t, trips[0].Days, 1)
	assert.Equal(t, "Louvre", trips[0].Days[0].Items[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newTripMock(t)
	defer cleanup()
	repo := NewTripRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "start_date", "travelers", "budget", "days", "created_at", "updated_at"}).
		AddRow("trip-1", "Paris", time.Now(), 2, 1500.0, sampleDaysJSON(t), time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, name, start_date").
		WithArgs("trip-1").
		WillReturnRows(rows)

	trip, err := repo.FindByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", trip.Name)
	require.Len(t, trip.Days, 1)
	assert.Equal(t, 1, trip.Days[0].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newTripMock(t)
	defer cleanup()
	repo := NewTripRepository(db)

	mock.ExpectQuery("SELECT id, name, start_date").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newTripMock(t)
	defer cleanup()
	repo := NewTripRepository(db)

	mock.ExpectExec("INSERT INTO trips").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	trip := &models.Trip{Name: "Tokyo", Travelers: 2, Budget: 3000}
	err := repo.Create(context.Background(), trip)
	require.NoError(t, err)
	assert.NotEmpty(t, trip.ID)
	assert.False(t, trip.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryUpdateDays(t *testing.T) {
	db, mock, cleanup := newTripMock(t)
	defer cleanup()
	repo := NewTripRepository(db)

	mock.ExpectExec("UPDATE trips SET days").
		WithArgs("trip-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateDays(context.Background(), "trip-1", []models.TripDay{{Day: 1, Date: "Day 1"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryUpdateDaysMissing(t *testing.T) {
	db, mock, cleanup := newTripMock(t)
	defer cleanup()
	repo := NewTripRepository(db)

	mock.ExpectExec("UPDATE trips SET days").
		WithArgs("ghost", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDays(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newTripMock(t)
	defer cleanup()
	repo := NewTripRepository(db)

	mock.ExpectExec("DELETE FROM trips").
		WithArgs("trip-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

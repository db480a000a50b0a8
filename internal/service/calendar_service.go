package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/pkg/export"
	"github.com/noah-isme/wayplan-api/pkg/timetext"
)

// CalendarService derives calendar events from itinerary days. The
// conversion is pure; rendering beyond ICS stays with the caller.
type CalendarService struct {
	ics    *export.ICSExporter
	logger *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		ics:    export.NewICSExporter(""),
		logger: logger,
	}
}

const calendarDateLayout = "2006-01-02"

// dayOffset anchors day N at tripStart + (N-1). Day numbers can carry
// gaps after a removal, so the number wins over the slice position.
func dayOffset(day models.TripDay, index int) int {
	if day.Day > 0 {
		return day.Day - 1
	}
	return index
}

// Events flattens the days into export records, anchoring day N at
// tripStart + (N-1). Items without a parseable start time are skipped;
// durations default to an hour.
func (s *CalendarService) Events(days []models.TripDay, tripStart time.Time) []models.CalendarExportEvent {
	var events []models.CalendarExportEvent
	for i, day := range days {
		date := tripStart.AddDate(0, 0, dayOffset(day, i))
		for _, item := range day.Items {
			if !timetext.Scheduled(item.Time) {
				continue
			}
			start, ok := timetext.ParseClock(item.Time)
			if !ok {
				continue
			}
			minutes := timetext.ParseDurationText(item.Duration)
			if minutes == 0 {
				minutes = 60
			}
			events = append(events, models.CalendarExportEvent{
				Title:       item.Title,
				Description: item.Notes,
				Location:    itemLocation(item),
				Date:        date.Format(calendarDateLayout),
				StartTime:   start.Format(timetext.Layout24),
				EndTime:     timetext.AddMinutes(start, minutes).Format(timetext.Layout24),
			})
		}
	}
	return events
}

// RenderICS produces an iCalendar document for the trip's scheduled items.
func (s *CalendarService) RenderICS(trip *models.Trip) ([]byte, error) {
	var events []export.CalendarEvent
	for i, day := range trip.Days {
		date := trip.StartDate.AddDate(0, 0, dayOffset(day, i))
		for _, item := range day.Items {
			if !timetext.Scheduled(item.Time) {
				continue
			}
			start, ok := timetext.ParseClock(item.Time)
			if !ok {
				continue
			}
			minutes := timetext.ParseDurationText(item.Duration)
			if minutes == 0 {
				minutes = 60
			}
			begin := time.Date(date.Year(), date.Month(), date.Day(), start.Hour, start.Minute, 0, 0, time.UTC)
			events = append(events, export.CalendarEvent{
				UID:         fmt.Sprintf("%s-%s", trip.ID, item.ID),
				Title:       item.Title,
				Description: item.Notes,
				Location:    itemLocation(item),
				Start:       begin,
				End:         begin.Add(time.Duration(minutes) * time.Minute),
			})
		}
	}
	return s.ics.Render(events), nil
}

// itemLocation renders the coordinate pair; the engine never geocodes.
func itemLocation(item models.TripItem) string {
	if !item.HasCoordinates() {
		return ""
	}
	return fmt.Sprintf("%.4f,%.4f", *item.Lat, *item.Lng)
}

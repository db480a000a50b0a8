package dto

import "github.com/noah-isme/wayplan-api/internal/models"

// ConflictsResponse lists overlapping item pairs across the itinerary.
type ConflictsResponse struct {
	Conflicts []models.Conflict `json:"conflicts"`
	Count     int               `json:"count"`
}

// DayStateResponse reports the scheduling state of a single day.
type DayStateResponse struct {
	Day   int                     `json:"day"`
	State models.DayScheduleState `json:"state"`
}

// GapsResponse lists free windows between scheduled items of one day.
type GapsResponse struct {
	Day  int                  `json:"day"`
	Gaps []models.ScheduleGap `json:"gaps"`
}

// RouteSummaryResponse aggregates travel distance for a day's located items.
type RouteSummaryResponse struct {
	Day            int     `json:"day"`
	Stops          int     `json:"stops"`
	Areas          int     `json:"areas"`
	DistanceKm     float64 `json:"distanceKm"`
	WalkingMinutes int     `json:"walkingMinutes"`
	DrivingMinutes int     `json:"drivingMinutes"`
}

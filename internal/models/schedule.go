package models

// Conflict reports that two items of the same day occupy overlapping time
// windows. It is derived from the current Days and never persisted; any
// mutation invalidates previously computed conflicts.
type Conflict struct {
	DayIndex    int    `json:"day_index"`
	FirstItemID string `json:"first_item_id"`
	FirstTitle  string `json:"first_title"`
	SecondID    string `json:"second_item_id"`
	SecondTitle string `json:"second_title"`
	Description string `json:"description"`
}

// DayScheduleState is a read-only projection of how scheduled a day is.
type DayScheduleState string

const (
	DayEmpty              DayScheduleState = "empty"
	DayUnscheduled        DayScheduleState = "unscheduled"
	DayPartiallyScheduled DayScheduleState = "partially_scheduled"
	DayFullyScheduled     DayScheduleState = "fully_scheduled"
	DayConflicted         DayScheduleState = "conflicted"
)

// ScheduleGap is an idle stretch between two consecutive scheduled items.
type ScheduleGap struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
}

// BudgetSummary aggregates spend across the whole trip. PerDay divides by
// the number of days that actually hold items so empty days do not dilute
// the average.
type BudgetSummary struct {
	Total      float64   `json:"total"`
	Budget     float64   `json:"budget"`
	Remaining  float64   `json:"remaining"`
	PerPerson  float64   `json:"per_person"`
	PerDay     float64   `json:"per_day"`
	ActiveDays int       `json:"active_days"`
	Travelers  int       `json:"travelers"`
	DaySpend   []float64 `json:"day_spend"`
}

// CalendarExportEvent is the flattened record handed to calendar renderers.
type CalendarExportEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}
